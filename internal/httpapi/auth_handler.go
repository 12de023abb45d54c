package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"time"

	"github.com/marketbay/storefront/internal/auth"
	"github.com/marketbay/storefront/internal/domain"
)

type AuthService interface {
	SignUp(ctx context.Context, req auth.SignupRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type AuthHandler struct {
	service AuthService
	timeout time.Duration
}

func NewAuthHandler(service AuthService, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		service: service,
		timeout: timeout,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponseDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(user *domain.User) UserResponseDTO {
	return UserResponseDTO{
		ID:        user.ID.Hex(),
		Name:      user.Name,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt,
	}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req auth.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_email", "email is not valid")
		return
	}
	if len(req.Username) < 3 {
		respondError(w, http.StatusBadRequest, "invalid_username", "username must be at least 3 characters")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "invalid_password", "password must be at least 6 characters")
		return
	}

	user, err := h.service.SignUp(ctx, req)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, user, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user":         toUserResponse(user),
	})
}
