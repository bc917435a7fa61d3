package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/forge-ai/forge/internal/config"
	"github.com/forge-ai/forge/internal/server/middleware"
	"github.com/forge-ai/forge/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	store     Store
	passwords *config.PasswordConfig
	sessions  *SessionStore
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(store Store, passwords *config.PasswordConfig, sessions *SessionStore) *AuthHandler {
	return &AuthHandler{
		store:     store,
		passwords: passwords,
		sessions:  sessions,
		validator: validator.New(),
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	exists, err := h.store.CheckEmailExists(r.Context(), req.Email)
	if err != nil {
		log.Printf("register: email check failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if exists {
		regErr := &ErrEmailAlreadyExists{Email: req.Email}
		writeError(w, HTTPStatus(regErr), regErr.Error())
		return
	}

	hash, err := h.passwords.HashPassword(req.Password)
	if err != nil {
		log.Printf("register: hash failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Email, req.Name, hash)
	if err != nil {
		log.Printf("register: create failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	token := h.sessions.Issue(user.ID)
	writeJSON(w, http.StatusCreated, types.AuthResponse{
		User:  &types.User{ID: user.ID, Email: user.Email, Name: user.Name},
		Token: token,
	})
}

// Login handles user login requests. Every mismatch answers the same 401:
// unknown email and wrong password are indistinguishable.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		log.Printf("login: lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil || !h.passwords.VerifyPassword(req.Password, user.PasswordHash) {
		credErr := &ErrInvalidCredentials{}
		writeError(w, HTTPStatus(credErr), credErr.Error())
		return
	}

	token := h.sessions.Issue(user.ID)
	writeJSON(w, http.StatusOK, types.AuthResponse{
		User:  &types.User{ID: user.ID, Email: user.Email, Name: user.Name},
		Token: token,
	})
}

// Logout revokes the presented token. It always succeeds, token or not.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.BearerToken(r); ok {
		h.sessions.Revoke(token)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
