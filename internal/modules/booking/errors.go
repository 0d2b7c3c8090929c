package booking

import (
	"fmt"

	"whiskerwatch/internal/domain"
)

var (
	ErrBookingNotFound = fmt.Errorf("booking %w", domain.ErrNotFound)
	ErrPetNotFound     = fmt.Errorf("pet %w", domain.ErrNotFound)
	ErrOwnerNotFound   = fmt.Errorf("owner %w", domain.ErrNotFound)
	ErrSitterNotFound  = fmt.Errorf("sitter %w", domain.ErrNotFound)
	ErrStatusNotFound  = fmt.Errorf("booking status %w", domain.ErrNotFound)

	ErrSlotUnavailable = domain.ErrTimeSlotTaken
	ErrUnknownStatus   = fmt.Errorf("unknown booking status: %w", domain.ErrValidation)
	ErrUnknownUserType = fmt.Errorf("userType must be owner, sitter or all: %w", domain.ErrValidation)
	ErrInvalidRange    = fmt.Errorf("end date must not be before start date: %w", domain.ErrValidation)
)
