package auth

import (
	"time"

	"whiskerwatch/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type AuthResponse struct {
	Token        string          `json:"token"`
	Type         string          `json:"type"`
	ExpiresIn    int64           `json:"expiresIn"`
	UserID       int64           `json:"userId"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	CustomerType string          `json:"customerType,omitempty"`
	User         *domain.Session `json:"user"`
}

type ValidateResponse struct {
	Valid bool            `json:"valid"`
	User  *domain.Session `json:"user,omitempty"`
}

func newAuthResponse(token string, ttl time.Duration, s *domain.Session) *AuthResponse {
	return &AuthResponse{
		Token:        token,
		Type:         "Bearer",
		ExpiresIn:    int64(ttl / time.Second),
		UserID:       s.UserID,
		Username:     s.Username,
		Email:        s.Email,
		Role:         s.Role,
		CustomerType: s.CustomerType,
		User:         s,
	}
}
