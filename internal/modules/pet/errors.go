package pet

import (
	"fmt"

	"whiskerwatch/internal/domain"
)

var (
	ErrPetNotFound     = fmt.Errorf("pet %w", domain.ErrNotFound)
	ErrOwnerNotFound   = fmt.Errorf("owner %w", domain.ErrNotFound)
	ErrPetTypeNotFound = fmt.Errorf("pet type %w", domain.ErrNotFound)

	ErrUnknownPetType = fmt.Errorf("unknown pet type: %w", domain.ErrValidation)
	ErrNotPetOwner    = fmt.Errorf("only the owner or an admin may change this pet: %w", domain.ErrForbidden)
)
