package bills

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/slateapp/slate/internal/bills"
	"github.com/slateapp/slate/internal/models"
)

type Handler struct {
	svc *bills.Service
}

func NewHandler(svc *bills.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/toggle", h.togglePaid)
}

type categoryRequest struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// resolve fills the emoji from the catalog for known labels; anything
// else is a user-defined category and kept as sent.
func (c categoryRequest) resolve() models.Category {
	if c.Emoji == "" {
		if cat, ok := models.CatalogLookup(c.Label); ok {
			return cat
		}
	}
	return models.Category{Label: c.Label, Emoji: c.Emoji}
}

type createBillRequest struct {
	Name        string          `json:"name"`
	Category    categoryRequest `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	IsPaid      bool            `json:"isPaid"`
	IsRecurring bool            `json:"isRecurring"`
	Notes       string          `json:"notes"`
}

func (req createBillRequest) validate() error {
	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	if _, err := time.Parse(models.DateFormat, req.DueDate); err != nil {
		return errors.New("dueDate must be YYYY-MM-DD")
	}
	return nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bill := h.svc.Add(r.Context(), bills.AddParams{
		Name:        req.Name,
		Category:    req.Category.resolve(),
		Amount:      req.Amount,
		DueDate:     req.DueDate,
		IsPaid:      req.IsPaid,
		IsRecurring: req.IsRecurring,
		Notes:       req.Notes,
	})

	writeJSON(w, http.StatusCreated, bill)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Bills())
}

type updateBillRequest struct {
	Name        *string          `json:"name"`
	Category    *categoryRequest `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *string          `json:"dueDate"`
	IsRecurring *bool            `json:"isRecurring"`
	Notes       *string          `json:"notes"`
}

func (req updateBillRequest) patch() (models.BillPatch, error) {
	var patch models.BillPatch

	patch.Name = req.Name
	if req.Category != nil {
		cat := req.Category.resolve()
		patch.Category = &cat
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return patch, errors.New("amount must not be negative")
		}
		patch.Amount = req.Amount
	}
	if req.DueDate != nil {
		if _, err := time.Parse(models.DateFormat, *req.DueDate); err != nil {
			return patch, errors.New("dueDate must be YYYY-MM-DD")
		}
		patch.DueDate = req.DueDate
	}
	patch.IsRecurring = req.IsRecurring
	patch.Notes = req.Notes

	return patch, nil
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	patch, err := req.patch()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bill, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, bills.ErrBillNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, bill)
}

func (h *Handler) togglePaid(w http.ResponseWriter, r *http.Request) {
	bill, err := h.svc.TogglePaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, bills.ErrBillNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, bill)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, bills.ErrBillNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Categories serves the fixed category catalog.
func Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Catalog)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
