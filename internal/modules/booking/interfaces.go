package booking

import (
	"context"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/repository"

	"gorm.io/datatypes"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CountOverlapping(ctx context.Context, sitterID int64, date datatypes.Date, slot domain.TimeRange, excludeID int64) (int64, error)
	CreateIfSlotFree(ctx context.Context, b *domain.Booking) error
	UpdateIfSlotFree(ctx context.Context, b *domain.Booking) error
	UpdateStatus(ctx context.Context, id, statusID int64) error
	Delete(ctx context.Context, id int64) error
	Find(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	FindUpcoming(ctx context.Context, q repository.UpcomingQuery) ([]domain.Booking, error)
	FindByDateRange(ctx context.Context, from, to datatypes.Date) ([]domain.Booking, error)
}

type PetRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type StatusRepository interface {
	BookingStatusByID(ctx context.Context, id int64) (*domain.BookingStatus, error)
	BookingStatusByName(ctx context.Context, name string) (*domain.BookingStatus, error)
}

// Notifier receives booking events after successful writes.
type Notifier interface {
	PublishBookingEvent(recipients []int64, evt domain.BookingEvent)
}
