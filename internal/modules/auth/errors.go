package auth

import (
	"fmt"

	"whiskerwatch/internal/domain"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	ErrAccountDisabled    = fmt.Errorf("account is disabled: %w", domain.ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid or expired token: %w", domain.ErrUnauthorized)
)
