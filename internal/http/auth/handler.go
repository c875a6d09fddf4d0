package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slateapp/slate/internal/app"
	"github.com/slateapp/slate/internal/auth"
	"github.com/slateapp/slate/internal/middleware"
	"github.com/slateapp/slate/internal/models"
)

type Handler struct {
	authn auth.Authenticator
	jwt   *auth.JWTManager
	app   *app.App
}

func NewHandler(authn auth.Authenticator, jwt *auth.JWTManager, app *app.App) *Handler {
	return &Handler{authn: authn, jwt: jwt, app: app}
}

// Routes mounts the public endpoints; Protected mounts the ones that
// require a valid session token.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

func (h *Handler) Protected(r chi.Router) {
	r.Post("/logout", h.logout)
	r.Get("/me", h.me)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.authn.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, auth.ErrWeakPassword):
			status = http.StatusBadRequest
		case errors.Is(err, auth.ErrEmailExists):
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	h.startSession(w, r, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.authn.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	h.startSession(w, r, user)
}

// startSession issues the token and runs the sign-in reload before
// answering, so the first request after login already sees synced data.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, err := h.jwt.Generate(user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.app.SignIn(r.Context(), user.ID)
	slog.Info("Session started", "user_id", user.ID)

	writeJSON(w, http.StatusOK, sessionResponse{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ended := h.app.UserID()
	h.app.SignOut(r.Context())
	slog.Info("Session ended", "user_id", ended)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"userId": middleware.GetUserID(r.Context()),
		"email":  middleware.GetEmail(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
