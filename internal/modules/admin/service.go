package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"whiskerwatch/internal/domain"
)

var ErrUserNotFound = fmt.Errorf("user %w", domain.ErrNotFound)

// Service computes platform statistics with grouped counts and handles user
// moderation.
type Service struct {
	stats StatsRepository
	users UserRepository
}

func NewService(stats StatsRepository, users UserRepository) *Service {
	return &Service{stats: stats, users: users}
}

func (s *Service) Overview(ctx context.Context) (*OverviewStats, error) {
	users, err := s.UserStats(ctx)
	if err != nil {
		return nil, err
	}
	pets, err := s.PetStats(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.BookingStats(ctx)
	if err != nil {
		return nil, err
	}

	return &OverviewStats{
		TotalUsers:         users.Total,
		ActiveUsers:        users.Active,
		TotalPets:          pets.Total,
		ActivePets:         pets.Active,
		TotalBookings:      bookings.Total,
		PendingBookings:    bookings.Pending,
		CompletedBookings:  bookings.Completed,
		InProgressBookings: bookings.InProgress,
		CancelledBookings:  bookings.Cancelled,
		Owners:             users.Owners,
		Sitters:            users.Sitters,
	}, nil
}

func (s *Service) UserStats(ctx context.Context) (*UserStats, error) {
	active := true

	total, err := s.stats.CountUsers(ctx, nil)
	if err != nil {
		return nil, err
	}
	activeCount, err := s.stats.CountUsers(ctx, &active)
	if err != nil {
		return nil, err
	}
	byRole, err := s.stats.UsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.stats.UsersByCustomerType(ctx)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		Total:     total,
		Active:    activeCount,
		Inactive:  total - activeCount,
		Admins:    byRole[domain.RoleAdmin],
		Customers: byRole[domain.RoleCustomer],
		Owners:    byType[domain.CustomerOwner],
		Sitters:   byType[domain.CustomerSitter],
		Both:      byType[domain.CustomerBoth],
	}, nil
}

func (s *Service) PetStats(ctx context.Context) (*PetStats, error) {
	active := true

	total, err := s.stats.CountPets(ctx, nil)
	if err != nil {
		return nil, err
	}
	activeCount, err := s.stats.CountPets(ctx, &active)
	if err != nil {
		return nil, err
	}
	byType, err := s.stats.PetsByType(ctx)
	if err != nil {
		return nil, err
	}

	return &PetStats{
		Total:    total,
		Active:   activeCount,
		Inactive: total - activeCount,
		ByType:   byType,
	}, nil
}

func (s *Service) BookingStats(ctx context.Context) (*BookingStats, error) {
	total, err := s.stats.CountBookings(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.stats.BookingsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &BookingStats{
		Total:      total,
		Pending:    byStatus[domain.StatusPending],
		Confirmed:  byStatus[domain.StatusConfirmed],
		InProgress: byStatus[domain.StatusInProgress],
		Completed:  byStatus[domain.StatusCompleted],
		Cancelled:  byStatus[domain.StatusCancelled],
		Rejected:   byStatus[domain.StatusRejected],
	}, nil
}

// DeactivateUser blocks logins for a user without deleting any data.
func (s *Service) DeactivateUser(ctx context.Context, adminID, userID int64) error {
	if err := s.setActive(ctx, userID, false); err != nil {
		return err
	}
	slog.Info("user deactivated", "user_id", userID, "admin_id", adminID)
	return nil
}

func (s *Service) ActivateUser(ctx context.Context, adminID, userID int64) error {
	if err := s.setActive(ctx, userID, true); err != nil {
		return err
	}
	slog.Info("user activated", "user_id", userID, "admin_id", adminID)
	return nil
}

func (s *Service) setActive(ctx context.Context, userID int64, active bool) error {
	err := s.users.SetActive(ctx, userID, active)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
