package repository

import (
	"context"

	"whiskerwatch/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

type PetFilter struct {
	OwnerID  *int64
	TypeID   *int64
	IsActive *bool
}

func (r *PetRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Type").Preload("Owner")
}

func (r *PetRepository) Create(ctx context.Context, p *domain.Pet) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *PetRepository) Update(ctx context.Context, p *domain.Pet) error {
	return translateError(updateRow(r.db.WithContext(ctx), &domain.Pet{}, p, p.ID))
}

func (r *PetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	var p domain.Pet
	if err := r.withRelations(ctx).First(&p, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// IsOwnedBy reports whether petID exists and belongs to userID.
func (r *PetRepository) IsOwnedBy(ctx context.Context, petID, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Pet{}).
		Where("id = ? AND owner_id = ?", petID, userID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PetRepository) Find(ctx context.Context, f PetFilter) ([]domain.Pet, error) {
	q := r.withRelations(ctx).Model(&domain.Pet{})

	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.TypeID != nil {
		q = q.Where("type_id = ?", *f.TypeID)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	var pets []domain.Pet
	if err := q.Order("id").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

// DeleteCascade removes the pet's bookings and then the pet in one transaction.
func (r *PetRepository) DeleteCascade(ctx context.Context, id int64) (*CascadeResult, error) {
	res := &CascadeResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("pet_id = ?", id).Delete(&domain.Booking{})
		if del.Error != nil {
			return del.Error
		}
		res.Bookings = del.RowsAffected

		del = tx.Delete(&domain.Pet{}, id)
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		res.Pets = del.RowsAffected
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	return res, nil
}

// BookingCounts returns the number of bookings per pet for the given pets.
func (r *PetRepository) BookingCounts(ctx context.Context, ids []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []struct {
		PetID int64
		N     int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("pet_id, COUNT(*) AS n").
		Where("pet_id IN ?", ids).
		Group("pet_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		out[row.PetID] = row.N
	}
	return out, nil
}
