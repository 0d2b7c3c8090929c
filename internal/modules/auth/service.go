package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/pkg/password"
)

// Service issues and checks access tokens.
type Service struct {
	users  UserRepository
	tokens TokenService
	hasher password.Hasher
}

func NewService(users UserRepository, tokens TokenService, hasher password.Hasher) *Service {
	return &Service{users: users, tokens: tokens, hasher: hasher}
}

// Login checks the credentials and returns a bearer token. Unknown emails and
// wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, email, plain string) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, plain); err != nil {
		slog.Warn("login failed", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.issue(ctx, user.ID)
}

// Refresh exchanges a valid token for a new one built from the current
// state of the user.
func (s *Service) Refresh(ctx context.Context, token string) (*AuthResponse, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.issue(ctx, claims.UserID)
}

// Validate never fails on a bad token; it reports valid=false instead.
func (s *Service) Validate(ctx context.Context, token string) (*ValidateResponse, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return &ValidateResponse{Valid: false}, nil
	}

	session, err := s.users.FindSession(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &ValidateResponse{Valid: false}, nil
		}
		return nil, err
	}
	if !session.IsActive {
		return &ValidateResponse{Valid: false}, nil
	}
	return &ValidateResponse{Valid: true, User: session}, nil
}

// Me returns the current session of the authenticated user.
func (s *Service) Me(ctx context.Context, userID int64) (*domain.Session, error) {
	session, err := s.users.FindSession(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return session, nil
}

func (s *Service) issue(ctx context.Context, userID int64) (*AuthResponse, error) {
	session, err := s.users.FindSession(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if !session.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.tokens.GenerateToken(session)
	if err != nil {
		return nil, err
	}
	return newAuthResponse(token, s.tokens.TTL(), session), nil
}
