package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer. Module errors wrap one of these so
// handlers can pick a status code with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ErrTimeSlotTaken is returned by the store when a sitter already has a
// booking overlapping the requested range.
var ErrTimeSlotTaken = fmt.Errorf("sitter time slot already booked: %w", ErrConflict)

var ErrInvalidTimeRange = fmt.Errorf("end time must be after start time: %w", ErrValidation)
