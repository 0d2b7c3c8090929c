package user

import (
	"fmt"

	"whiskerwatch/internal/domain"
)

var (
	ErrUserNotFound         = fmt.Errorf("user %w", domain.ErrNotFound)
	ErrRoleNotFound         = fmt.Errorf("role %w", domain.ErrNotFound)
	ErrCustomerTypeNotFound = fmt.Errorf("customer type %w", domain.ErrNotFound)

	ErrUsernameTaken = fmt.Errorf("username already exists: %w", domain.ErrConflict)
	ErrEmailTaken    = fmt.Errorf("email already exists: %w", domain.ErrConflict)
	ErrPhoneTaken    = fmt.Errorf("phone number already exists: %w", domain.ErrConflict)

	ErrAdminRoleRequired = fmt.Errorf("only admins can grant the ADMIN role: %w", domain.ErrForbidden)
	ErrReactivateDenied  = fmt.Errorf("only admins can reactivate an account: %w", domain.ErrForbidden)
	ErrUnknownFilter     = fmt.Errorf("unknown customer type or role: %w", domain.ErrValidation)
)
