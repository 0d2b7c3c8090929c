package repository

import (
	"context"

	"whiskerwatch/internal/domain"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type groupCount struct {
	Name string
	N    int64
}

func (r *StatsRepository) grouped(ctx context.Context, q *gorm.DB) (map[string]int64, error) {
	var rows []groupCount
	if err := q.WithContext(ctx).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Name] = row.N
	}
	return out, nil
}

func (r *StatsRepository) CountUsers(ctx context.Context, active *bool) (int64, error) {
	return r.count(ctx, &domain.User{}, active)
}

func (r *StatsRepository) CountPets(ctx context.Context, active *bool) (int64, error) {
	return r.count(ctx, &domain.Pet{}, active)
}

func (r *StatsRepository) CountBookings(ctx context.Context) (int64, error) {
	return r.count(ctx, &domain.Booking{}, nil)
}

func (r *StatsRepository) count(ctx context.Context, model any, active *bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(model)
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *StatsRepository) UsersByRole(ctx context.Context) (map[string]int64, error) {
	return r.grouped(ctx, r.db.Table("users u").
		Select("r.role_name AS name, COUNT(*) AS n").
		Joins("JOIN roles r ON r.id = u.role_id").
		Group("r.role_name"))
}

// UsersByCustomerType skips users without a customer type.
func (r *StatsRepository) UsersByCustomerType(ctx context.Context) (map[string]int64, error) {
	return r.grouped(ctx, r.db.Table("users u").
		Select("ct.type_name AS name, COUNT(*) AS n").
		Joins("JOIN customer_types ct ON ct.id = u.customer_type_id").
		Group("ct.type_name"))
}

func (r *StatsRepository) PetsByType(ctx context.Context) (map[string]int64, error) {
	return r.grouped(ctx, r.db.Table("pets p").
		Select("pt.type_name AS name, COUNT(*) AS n").
		Joins("JOIN pet_types pt ON pt.id = p.type_id").
		Group("pt.type_name"))
}

func (r *StatsRepository) BookingsByStatus(ctx context.Context) (map[string]int64, error) {
	return r.grouped(ctx, r.db.Table("bookings b").
		Select("bs.status_name AS name, COUNT(*) AS n").
		Joins("JOIN booking_statuses bs ON bs.id = b.status_id").
		Group("bs.status_name"))
}
