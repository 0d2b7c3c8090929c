package user

import (
	"context"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/repository"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Find(ctx context.Context, f repository.UserFilter) ([]domain.User, error)
	ActivityCounts(ctx context.Context, ids []int64) (map[int64]domain.UserActivity, error)
	DeleteCascade(ctx context.Context, id int64) (*repository.CascadeResult, error)
}

// ReferenceRepository resolves roles and customer types.
type ReferenceRepository interface {
	RoleByID(ctx context.Context, id int64) (*domain.Role, error)
	RoleByName(ctx context.Context, name string) (*domain.Role, error)
	CustomerTypeByID(ctx context.Context, id int64) (*domain.CustomerType, error)
	CustomerTypeByName(ctx context.Context, name string) (*domain.CustomerType, error)
}
