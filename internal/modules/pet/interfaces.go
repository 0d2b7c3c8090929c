package pet

import (
	"context"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/repository"
)

type PetRepository interface {
	Create(ctx context.Context, p *domain.Pet) error
	Update(ctx context.Context, p *domain.Pet) error
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	IsOwnedBy(ctx context.Context, petID, userID int64) (bool, error)
	Find(ctx context.Context, f repository.PetFilter) ([]domain.Pet, error)
	DeleteCascade(ctx context.Context, id int64) (*repository.CascadeResult, error)
	BookingCounts(ctx context.Context, ids []int64) (map[int64]int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type PetTypeRepository interface {
	PetTypeByID(ctx context.Context, id int64) (*domain.PetType, error)
	PetTypeByName(ctx context.Context, name string) (*domain.PetType, error)
}
