package repository

import (
	"context"
	"strings"

	"whiskerwatch/internal/domain"

	"gorm.io/gorm"
)

// ReferenceRepository reads the static lookup tables: roles, customer types,
// pet types and booking statuses.
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func firstWhere[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where(query, args...).First(&out).Error; err != nil {
		return nil, translateError(err)
	}
	return &out, nil
}

func listAll[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	var out []T
	if err := db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReferenceRepository) RoleByID(ctx context.Context, id int64) (*domain.Role, error) {
	return firstWhere[domain.Role](ctx, r.db, "id = ?", id)
}

func (r *ReferenceRepository) RoleByName(ctx context.Context, name string) (*domain.Role, error) {
	return firstWhere[domain.Role](ctx, r.db, "role_name = ?", strings.ToUpper(name))
}

func (r *ReferenceRepository) Roles(ctx context.Context) ([]domain.Role, error) {
	return listAll[domain.Role](ctx, r.db)
}

func (r *ReferenceRepository) CustomerTypeByID(ctx context.Context, id int64) (*domain.CustomerType, error) {
	return firstWhere[domain.CustomerType](ctx, r.db, "id = ?", id)
}

func (r *ReferenceRepository) CustomerTypeByName(ctx context.Context, name string) (*domain.CustomerType, error) {
	return firstWhere[domain.CustomerType](ctx, r.db, "type_name = ?", strings.ToUpper(name))
}

func (r *ReferenceRepository) CustomerTypes(ctx context.Context) ([]domain.CustomerType, error) {
	return listAll[domain.CustomerType](ctx, r.db)
}

func (r *ReferenceRepository) PetTypeByID(ctx context.Context, id int64) (*domain.PetType, error) {
	return firstWhere[domain.PetType](ctx, r.db, "id = ?", id)
}

func (r *ReferenceRepository) PetTypeByName(ctx context.Context, name string) (*domain.PetType, error) {
	return firstWhere[domain.PetType](ctx, r.db, "type_name = ?", strings.ToUpper(name))
}

func (r *ReferenceRepository) PetTypes(ctx context.Context) ([]domain.PetType, error) {
	return listAll[domain.PetType](ctx, r.db)
}

func (r *ReferenceRepository) BookingStatusByID(ctx context.Context, id int64) (*domain.BookingStatus, error) {
	return firstWhere[domain.BookingStatus](ctx, r.db, "id = ?", id)
}

func (r *ReferenceRepository) BookingStatusByName(ctx context.Context, name string) (*domain.BookingStatus, error) {
	return firstWhere[domain.BookingStatus](ctx, r.db, "status_name = ?", strings.ToUpper(name))
}

func (r *ReferenceRepository) BookingStatuses(ctx context.Context) ([]domain.BookingStatus, error) {
	return listAll[domain.BookingStatus](ctx, r.db)
}
