package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountOverlapping(ctx context.Context, sitterID int64, date datatypes.Date, slot domain.TimeRange, excludeID int64) (int64, error) {
	args := m.Called(ctx, sitterID, date, slot, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CreateIfSlotFree(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateIfSlotFree(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id, statusID int64) error {
	args := m.Called(ctx, id, statusID)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) Find(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindUpcoming(ctx context.Context, q repository.UpcomingQuery) ([]domain.Booking, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindByDateRange(ctx context.Context, from, to datatypes.Date) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pet), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) BookingStatusByID(ctx context.Context, id int64) (*domain.BookingStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingStatus), args.Error(1)
}

func (m *MockStatusRepository) BookingStatusByName(ctx context.Context, name string) (*domain.BookingStatus, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingStatus), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishBookingEvent(recipients []int64, evt domain.BookingEvent) {
	m.Called(recipients, evt)
}

type fixture struct {
	bookings *MockBookingRepository
	pets     *MockPetRepository
	users    *MockUserRepository
	statuses *MockStatusRepository
	notifier *MockNotifier
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{
		bookings: new(MockBookingRepository),
		pets:     new(MockPetRepository),
		users:    new(MockUserRepository),
		statuses: new(MockStatusRepository),
		notifier: new(MockNotifier),
	}
	f.svc = NewService(f.bookings, f.pets, f.users, f.statuses, f.notifier)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.bookings.AssertExpectations(t)
	f.pets.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.statuses.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func ptr[T any](v T) *T { return &v }

func validRequest() BookingRequest {
	return BookingRequest{
		BookingDate: "2024-06-01",
		StartTime:   "10:00",
		EndTime:     "11:00",
		PetID:       3,
		OwnerID:     1,
		SitterID:    ptr(int64(7)),
	}
}

func slotMatcher(start, end string) interface{} {
	return mock.MatchedBy(func(r domain.TimeRange) bool {
		return domain.FormatClock(r.Start) == start && domain.FormatClock(r.End) == end
	})
}

func TestService_IsTimeSlotAvailable_SitterScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date, err := domain.ParseDate("2024-06-01")
	require.NoError(t, err)

	// sitter 7 already has 09:00-10:00 on 2024-06-01
	f.bookings.On("CountOverlapping", ctx, int64(7), date, slotMatcher("09:30", "10:30"), int64(0)).Return(int64(1), nil)
	f.bookings.On("CountOverlapping", ctx, int64(7), date, slotMatcher("10:00", "11:00"), int64(0)).Return(int64(0), nil)

	overlapping, err := domain.NewTimeRange("09:30", "10:30")
	require.NoError(t, err)
	ok, err := f.svc.IsTimeSlotAvailable(ctx, 7, date, overlapping)
	require.NoError(t, err)
	assert.False(t, ok)

	touching, err := domain.NewTimeRange("10:00", "11:00")
	require.NoError(t, err)
	ok, err = f.svc.IsTimeSlotAvailable(ctx, 7, date, touching)
	require.NoError(t, err)
	assert.True(t, ok)

	f.assertExpectations(t)
}

func TestService_CreateBooking_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.pets.On("GetByID", ctx, int64(3)).Return(&domain.Pet{ID: 3, OwnerID: 1}, nil)
	f.users.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1}, nil)
	f.users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7}, nil)
	f.statuses.On("BookingStatusByName", ctx, domain.StatusPending).Return(&domain.BookingStatus{ID: 11, StatusName: domain.StatusPending}, nil)
	f.bookings.On("CreateIfSlotFree", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.StatusID == 11 && b.PetID == 3 && *b.SitterID == 7 &&
			domain.FormatClock(b.StartTime) == "10:00" && domain.FormatDate(b.BookingDate) == "2024-06-01"
	})).Return(nil)

	stored := &domain.Booking{ID: 999, PetID: 3, OwnerID: 1, SitterID: ptr(int64(7)), Status: &domain.BookingStatus{StatusName: domain.StatusPending}}
	f.bookings.On("GetByID", ctx, int64(999)).Return(stored, nil)
	f.notifier.On("PublishBookingEvent", []int64{1, 7}, mock.MatchedBy(func(e domain.BookingEvent) bool {
		return e.Type == domain.EventBookingCreated && e.BookingID == 999 && e.Status == domain.StatusPending
	})).Return()

	b, err := f.svc.CreateBooking(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
	f.assertExpectations(t)
}

func TestService_CreateBooking_SlotTaken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.pets.On("GetByID", ctx, int64(3)).Return(&domain.Pet{ID: 3}, nil)
	f.users.On("GetByID", ctx, mock.Anything).Return(&domain.User{}, nil)
	f.statuses.On("BookingStatusByID", ctx, int64(2)).Return(&domain.BookingStatus{ID: 2}, nil)
	f.bookings.On("CreateIfSlotFree", ctx, mock.Anything).Return(domain.ErrTimeSlotTaken)

	req := validRequest()
	req.StatusID = ptr(int64(2))

	_, err := f.svc.CreateBooking(ctx, req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	f.notifier.AssertNotCalled(t, "PublishBookingEvent", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_ValidationBeforeLookups(t *testing.T) {
	cases := map[string]func(r *BookingRequest){
		"bad date":       func(r *BookingRequest) { r.BookingDate = "01/06/2024" },
		"bad time":       func(r *BookingRequest) { r.StartTime = "9am" },
		"end before":     func(r *BookingRequest) { r.StartTime, r.EndTime = "11:00", "10:00" },
		"zero length":    func(r *BookingRequest) { r.EndTime = r.StartTime },
		"seconds invert": func(r *BookingRequest) { r.StartTime, r.EndTime = "10:00:30", "10:00:10" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			mutate(&req)

			_, err := f.svc.CreateBooking(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			f.assertExpectations(t)
		})
	}
}

func TestService_CreateBooking_MissingReferences(t *testing.T) {
	ctx := context.Background()

	t.Run("pet", func(t *testing.T) {
		f := newFixture()
		f.pets.On("GetByID", ctx, int64(3)).Return(nil, domain.ErrNotFound)

		_, err := f.svc.CreateBooking(ctx, validRequest())
		assert.ErrorIs(t, err, ErrPetNotFound)
		f.assertExpectations(t)
	})

	t.Run("sitter", func(t *testing.T) {
		f := newFixture()
		f.pets.On("GetByID", ctx, int64(3)).Return(&domain.Pet{ID: 3}, nil)
		f.users.On("GetByID", ctx, int64(1)).Return(&domain.User{ID: 1}, nil)
		f.users.On("GetByID", ctx, int64(7)).Return(nil, domain.ErrNotFound)

		_, err := f.svc.CreateBooking(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSitterNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		f.assertExpectations(t)
	})

	t.Run("status", func(t *testing.T) {
		f := newFixture()
		f.pets.On("GetByID", ctx, int64(3)).Return(&domain.Pet{ID: 3}, nil)
		f.users.On("GetByID", ctx, mock.Anything).Return(&domain.User{}, nil)
		f.statuses.On("BookingStatusByID", ctx, int64(42)).Return(nil, domain.ErrNotFound)

		req := validRequest()
		req.StatusID = ptr(int64(42))
		_, err := f.svc.CreateBooking(ctx, req)
		assert.ErrorIs(t, err, ErrStatusNotFound)
		f.assertExpectations(t)
	})
}

func TestService_UpdateBooking_MissingOwnerLeavesBookingUntouched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	existing := &domain.Booking{ID: 5, PetID: 3, OwnerID: 1, StatusID: 2}
	f.bookings.On("GetByID", ctx, int64(5)).Return(existing, nil)
	f.pets.On("GetByID", ctx, int64(3)).Return(&domain.Pet{ID: 3}, nil)
	f.users.On("GetByID", ctx, int64(1)).Return(nil, domain.ErrNotFound)

	req := validRequest()
	req.SpecialRequests = "changed"
	_, err := f.svc.UpdateBooking(ctx, 5, req)
	assert.ErrorIs(t, err, ErrOwnerNotFound)
	assert.Empty(t, existing.SpecialRequests)
	f.bookings.AssertNotCalled(t, "UpdateIfSlotFree", mock.Anything, mock.Anything)
}

func TestService_UpdateBooking_KeepsStatusWhenOmitted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	existing := &domain.Booking{ID: 5, PetID: 3, OwnerID: 1, StatusID: 4, Status: &domain.BookingStatus{ID: 4}}
	f.bookings.On("GetByID", ctx, int64(5)).Return(existing, nil)
	f.pets.On("GetByID", ctx, int64(3)).Return(&domain.Pet{ID: 3}, nil)
	f.users.On("GetByID", ctx, mock.Anything).Return(&domain.User{}, nil)
	f.bookings.On("UpdateIfSlotFree", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ID == 5 && b.StatusID == 4 && b.Status == nil && b.SpecialRequests == "water the cat"
	})).Return(nil)
	f.notifier.On("PublishBookingEvent", mock.Anything, mock.Anything).Return()

	req := validRequest()
	req.SpecialRequests = "  water the cat "
	_, err := f.svc.UpdateBooking(ctx, 5, req)
	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestService_UpdateBooking_NotFound(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(nil, domain.ErrNotFound)

	_, err := f.svc.UpdateBooking(context.Background(), 5, validRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
	f.assertExpectations(t)
}

func TestService_UpdateBookingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("any transition", func(t *testing.T) {
		f := newFixture()
		f.statuses.On("BookingStatusByID", ctx, int64(1)).Return(&domain.BookingStatus{ID: 1, StatusName: domain.StatusPending}, nil)
		f.bookings.On("UpdateStatus", ctx, int64(5), int64(1)).Return(nil)
		f.bookings.On("GetByID", ctx, int64(5)).Return(&domain.Booking{ID: 5, OwnerID: 1, StatusID: 1}, nil)
		f.notifier.On("PublishBookingEvent", []int64{1}, mock.MatchedBy(func(e domain.BookingEvent) bool {
			return e.Type == domain.EventBookingStatusChanged
		})).Return()

		b, err := f.svc.UpdateBookingStatus(ctx, 5, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), b.StatusID)
		f.assertExpectations(t)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture()
		f.statuses.On("BookingStatusByID", ctx, int64(1)).Return(&domain.BookingStatus{ID: 1}, nil)
		f.bookings.On("UpdateStatus", ctx, int64(5), int64(1)).Return(domain.ErrNotFound)

		_, err := f.svc.UpdateBookingStatus(ctx, 5, 1)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_DeleteBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.bookings.On("GetByID", ctx, int64(5)).Return(&domain.Booking{ID: 5, OwnerID: 1, SitterID: ptr(int64(7))}, nil).Once()
	f.bookings.On("Delete", ctx, int64(5)).Return(nil)
	f.notifier.On("PublishBookingEvent", []int64{1, 7}, mock.MatchedBy(func(e domain.BookingEvent) bool {
		return e.Type == domain.EventBookingDeleted
	})).Return()

	require.NoError(t, f.svc.DeleteBooking(ctx, 5))

	f.bookings.On("GetByID", ctx, int64(5)).Return(nil, domain.ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteBooking(ctx, 5), ErrBookingNotFound)
	f.assertExpectations(t)
}

func TestService_GetBookings_FirstMatchingCriterion(t *testing.T) {
	ctx := context.Background()

	t.Run("owner wins over status", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("Find", ctx, repository.BookingFilter{OwnerID: ptr(int64(1))}).Return([]domain.Booking{}, nil)

		_, err := f.svc.GetBookings(ctx, Filter{OwnerID: ptr(int64(1)), Status: "PENDING"})
		require.NoError(t, err)
		f.assertExpectations(t)
	})

	t.Run("status by name", func(t *testing.T) {
		f := newFixture()
		f.statuses.On("BookingStatusByName", ctx, "confirmed").Return(&domain.BookingStatus{ID: 2}, nil)
		f.bookings.On("Find", ctx, repository.BookingFilter{StatusID: ptr(int64(2))}).Return([]domain.Booking{{ID: 1}}, nil)

		list, err := f.svc.GetBookings(ctx, Filter{Status: "confirmed"})
		require.NoError(t, err)
		assert.Len(t, list, 1)
		f.assertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture()
		f.statuses.On("BookingStatusByName", ctx, "LOST").Return(nil, domain.ErrNotFound)

		_, err := f.svc.GetBookings(ctx, Filter{Status: "LOST"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("no criteria lists all", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("Find", ctx, repository.BookingFilter{}).Return([]domain.Booking{}, nil)

		_, err := f.svc.GetBookings(ctx, Filter{})
		require.NoError(t, err)
		f.assertExpectations(t)
	})
}

func TestService_GetUpcoming(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.svc.now = func() time.Time { return time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC) }

	today, err := domain.ParseDate("2024-06-01")
	require.NoError(t, err)
	f.bookings.On("FindUpcoming", ctx, repository.UpcomingQuery{UserID: 7, As: repository.ParticipantSitter, From: today}).
		Return([]domain.Booking{}, nil)

	_, err = f.svc.GetUpcoming(ctx, 7, "SITTER")
	require.NoError(t, err)

	_, err = f.svc.GetUpcoming(ctx, 7, "walker")
	assert.ErrorIs(t, err, ErrUnknownUserType)
	f.assertExpectations(t)
}

func TestService_GetBookingsByDateRange(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetBookingsByDateRange(context.Background(), "2024-06-03", "2024-06-01")
	assert.ErrorIs(t, err, ErrInvalidRange)

	f.bookings.On("FindByDateRange", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	_, err = f.svc.GetBookingsByDateRange(context.Background(), "2024-06-01", "2024-06-03")
	assert.EqualError(t, err, "db down")
}
