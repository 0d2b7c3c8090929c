package auth

import (
	"context"
	"time"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/pkg/jwt"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	FindSession(ctx context.Context, userID int64) (*domain.Session, error)
}

type TokenService interface {
	GenerateToken(session *domain.Session) (string, error)
	TTL() time.Duration
	ValidateToken(token string) (*jwt.Claims, error)
}
