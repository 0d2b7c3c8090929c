package admin

import "context"

type StatsRepository interface {
	CountUsers(ctx context.Context, active *bool) (int64, error)
	CountPets(ctx context.Context, active *bool) (int64, error)
	CountBookings(ctx context.Context) (int64, error)
	UsersByRole(ctx context.Context) (map[string]int64, error)
	UsersByCustomerType(ctx context.Context) (map[string]int64, error)
	PetsByType(ctx context.Context) (map[string]int64, error)
	BookingsByStatus(ctx context.Context) (map[string]int64, error)
}

type UserRepository interface {
	SetActive(ctx context.Context, id int64, active bool) error
}
