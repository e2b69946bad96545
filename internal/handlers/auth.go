package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/authgate/internal/auth"
	"github.com/crucial707/authgate/internal/metrics"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Service *auth.Service
}

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ==========================
// Register (password stored as bcrypt hash)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	_, err := h.Service.Register(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			JSONError(w, auth.ErrInvalidInput.Error(), http.StatusBadRequest)
		case errors.Is(err, auth.ErrUsernameTaken):
			JSONError(w, auth.ErrUsernameTaken.Error(), http.StatusBadRequest)
		default:
			slog.Error("register failed", "error", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		}
		return
	}

	metrics.IncRegistrations()
	JSON(w, map[string]string{"message": "user registered successfully"}, http.StatusCreated)
}

// ==========================
// Login (verify secret, issue access token)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	token, err := h.Service.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			JSONError(w, auth.ErrInvalidInput.Error(), http.StatusBadRequest)
		case errors.Is(err, auth.ErrInvalidCredentials):
			// One message for unknown user and wrong password alike.
			metrics.IncLogins("failure")
			JSONError(w, auth.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		default:
			slog.Error("login failed", "error", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		}
		return
	}

	metrics.IncLogins("success")
	JSON(w, map[string]string{
		"message": "login successful",
		"token":   token,
	}, http.StatusOK)
}
