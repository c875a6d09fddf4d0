package profile

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slateapp/slate/internal/models"
	"github.com/slateapp/slate/internal/profile"
)

type Handler struct {
	svc *profile.Service
}

func NewHandler(svc *profile.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.set)
	r.Delete("/", h.clear)
}

// profileResponse carries the entitlement flag explicitly; the model
// excludes it from JSON so the local cache can never hold it.
type profileResponse struct {
	Name           string `json:"name"`
	Country        string `json:"country"`
	CurrencySymbol string `json:"currencySymbol"`
	Locale         string `json:"locale"`
	Email          string `json:"email,omitempty"`
	IsPro          bool   `json:"isPro"`
}

func toResponse(p models.Profile) profileResponse {
	return profileResponse{
		Name:           p.Name,
		Country:        p.Country,
		CurrencySymbol: p.CurrencySymbol,
		Locale:         p.Locale,
		Email:          p.Email,
		IsPro:          p.IsPro,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p := h.svc.Profile()
	if p == nil {
		http.Error(w, "no profile", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(*p))
}

type setProfileRequest struct {
	Name           string `json:"name"`
	Country        string `json:"country"`
	CurrencySymbol string `json:"currencySymbol"`
	Locale         string `json:"locale"`
	Email          string `json:"email"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	h.svc.Set(r.Context(), models.Profile{
		Name:           req.Name,
		Country:        req.Country,
		CurrencySymbol: req.CurrencySymbol,
		Locale:         req.Locale,
		Email:          req.Email,
	})

	p := h.svc.Profile()
	writeJSON(w, http.StatusOK, toResponse(*p))
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	h.svc.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
