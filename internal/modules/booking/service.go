package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/repository"

	"gorm.io/datatypes"
)

type Service struct {
	bookings BookingRepository
	pets     PetRepository
	users    UserRepository
	statuses StatusRepository
	notifier Notifier
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	pets PetRepository,
	users UserRepository,
	statuses StatusRepository,
	notifier Notifier,
) *Service {
	return &Service{
		bookings: bookings,
		pets:     pets,
		users:    users,
		statuses: statuses,
		notifier: notifier,
		now:      time.Now,
	}
}

// IsTimeSlotAvailable reports whether the sitter has no booking on date that
// overlaps slot. Touching endpoints do not overlap.
func (s *Service) IsTimeSlotAvailable(ctx context.Context, sitterID int64, date datatypes.Date, slot domain.TimeRange) (bool, error) {
	if !slot.Valid() {
		return false, domain.ErrInvalidTimeRange
	}
	n, err := s.bookings.CountOverlapping(ctx, sitterID, date, slot, 0)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (s *Service) CreateBooking(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	b := &domain.Booking{}
	if err := s.apply(ctx, b, req); err != nil {
		return nil, err
	}

	if err := s.bookings.CreateIfSlotFree(ctx, b); err != nil {
		return nil, s.writeError(err)
	}

	return s.reloadAndPublish(ctx, b.ID, domain.EventBookingCreated)
}

// UpdateBooking replaces every mutable field of the booking. All references
// are resolved before anything is written.
func (s *Service) UpdateBooking(ctx context.Context, id int64, req BookingRequest) (*domain.Booking, error) {
	existing, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, existing, req); err != nil {
		return nil, err
	}
	existing.ClearRelations()

	if err := s.bookings.UpdateIfSlotFree(ctx, existing); err != nil {
		return nil, s.writeError(err)
	}

	return s.reloadAndPublish(ctx, id, domain.EventBookingUpdated)
}

// UpdateBookingStatus sets the status. Any status may follow any other.
func (s *Service) UpdateBookingStatus(ctx context.Context, id, statusID int64) (*domain.Booking, error) {
	if _, err := s.statuses.BookingStatusByID(ctx, statusID); err != nil {
		return nil, notFoundAs(err, ErrStatusNotFound)
	}

	if err := s.bookings.UpdateStatus(ctx, id, statusID); err != nil {
		return nil, notFoundAs(err, ErrBookingNotFound)
	}

	return s.reloadAndPublish(ctx, id, domain.EventBookingStatusChanged)
}

func (s *Service) DeleteBooking(ctx context.Context, id int64) error {
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrBookingNotFound)
	}

	s.publish(domain.EventBookingDeleted, b)
	return nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrBookingNotFound)
	}
	return b, nil
}

// GetBookings applies only the first populated criterion of f; an empty
// filter lists every booking.
func (s *Service) GetBookings(ctx context.Context, f Filter) ([]domain.Booking, error) {
	var rf repository.BookingFilter

	switch {
	case f.OwnerID != nil:
		rf.OwnerID = f.OwnerID
	case f.SitterID != nil:
		rf.SitterID = f.SitterID
	case f.PetID != nil:
		rf.PetID = f.PetID
	case strings.TrimSpace(f.Status) != "":
		st, err := s.statuses.BookingStatusByName(ctx, strings.TrimSpace(f.Status))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, ErrUnknownStatus
			}
			return nil, err
		}
		rf.StatusID = &st.ID
	case strings.TrimSpace(f.BookingDate) != "":
		d, err := domain.ParseDate(f.BookingDate)
		if err != nil {
			return nil, err
		}
		rf.BookingDate = &d
	}

	return s.bookings.Find(ctx, rf)
}

func (s *Service) GetBookingsByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	return s.bookings.Find(ctx, repository.BookingFilter{OwnerID: &ownerID})
}

func (s *Service) GetBookingsBySitter(ctx context.Context, sitterID int64) ([]domain.Booking, error) {
	return s.bookings.Find(ctx, repository.BookingFilter{SitterID: &sitterID})
}

func (s *Service) GetBookingsByPet(ctx context.Context, petID int64) ([]domain.Booking, error) {
	return s.bookings.Find(ctx, repository.BookingFilter{PetID: &petID})
}

// GetUpcoming lists the user's bookings from today on. userType is "owner",
// "sitter" or empty/"all" for both sides.
func (s *Service) GetUpcoming(ctx context.Context, userID int64, userType string) ([]domain.Booking, error) {
	var as repository.Participant
	switch strings.ToLower(strings.TrimSpace(userType)) {
	case "", "all":
		as = repository.ParticipantAny
	case "owner":
		as = repository.ParticipantOwner
	case "sitter":
		as = repository.ParticipantSitter
	default:
		return nil, ErrUnknownUserType
	}

	return s.bookings.FindUpcoming(ctx, repository.UpcomingQuery{
		UserID: userID,
		As:     as,
		From:   domain.NewDate(s.now()),
	})
}

func (s *Service) GetBookingsByDateRange(ctx context.Context, from, to string) ([]domain.Booking, error) {
	start, err := domain.ParseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate(to)
	if err != nil {
		return nil, err
	}
	if domain.FormatDate(end) < domain.FormatDate(start) {
		return nil, ErrInvalidRange
	}
	return s.bookings.FindByDateRange(ctx, start, end)
}

// apply validates req, resolves every referenced row and copies the fields
// onto b. b is left untouched on error.
func (s *Service) apply(ctx context.Context, b *domain.Booking, req BookingRequest) error {
	date, err := domain.ParseDate(req.BookingDate)
	if err != nil {
		return err
	}
	slot, err := domain.NewTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return err
	}

	if _, err := s.pets.GetByID(ctx, req.PetID); err != nil {
		return notFoundAs(err, ErrPetNotFound)
	}
	if _, err := s.users.GetByID(ctx, req.OwnerID); err != nil {
		return notFoundAs(err, ErrOwnerNotFound)
	}
	if req.SitterID != nil {
		if _, err := s.users.GetByID(ctx, *req.SitterID); err != nil {
			return notFoundAs(err, ErrSitterNotFound)
		}
	}

	statusID := b.StatusID
	switch {
	case req.StatusID != nil:
		st, err := s.statuses.BookingStatusByID(ctx, *req.StatusID)
		if err != nil {
			return notFoundAs(err, ErrStatusNotFound)
		}
		statusID = st.ID
	case statusID == 0:
		st, err := s.statuses.BookingStatusByName(ctx, domain.StatusPending)
		if err != nil {
			return notFoundAs(err, ErrStatusNotFound)
		}
		statusID = st.ID
	}

	b.BookingDate = date
	b.StartTime = slot.Start
	b.EndTime = slot.End
	b.StatusID = statusID
	b.TotalCost = req.TotalCost
	b.SpecialRequests = strings.TrimSpace(req.SpecialRequests)
	b.PetID = req.PetID
	b.OwnerID = req.OwnerID
	b.SitterID = req.SitterID
	return nil
}

func (s *Service) writeError(err error) error {
	if errors.Is(err, domain.ErrTimeSlotTaken) {
		return ErrSlotUnavailable
	}
	return notFoundAs(err, ErrSitterNotFound)
}

func (s *Service) reloadAndPublish(ctx context.Context, id int64, eventType string) (*domain.Booking, error) {
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(eventType, b)
	return b, nil
}

func (s *Service) publish(eventType string, b *domain.Booking) {
	if s.notifier == nil {
		return
	}
	s.notifier.PublishBookingEvent(b.Participants(), domain.NewBookingEvent(eventType, b))
	slog.Debug("booking event published", "type", eventType, "booking_id", b.ID)
}

// notFoundAs replaces a generic not-found with the more specific target and
// passes other errors through.
func notFoundAs(err, target error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return target
	}
	return err
}
