package repository

import (
	"context"

	"whiskerwatch/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingFilter narrows a booking listing. All set fields are combined with AND.
type BookingFilter struct {
	OwnerID     *int64
	SitterID    *int64
	PetID       *int64
	StatusID    *int64
	BookingDate *datatypes.Date
}

// Participant selects which side of a booking a user is matched on.
type Participant string

const (
	ParticipantAny    Participant = ""
	ParticipantOwner  Participant = "owner"
	ParticipantSitter Participant = "sitter"
)

type UpcomingQuery struct {
	UserID int64
	As     Participant
	From   datatypes.Date
}

const overlapCondition = "sitter_id = ? AND booking_date = ? AND start_time < ? AND end_time > ?"

func (r *BookingRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Status").
		Preload("Pet").
		Preload("Pet.Type").
		Preload("Owner").
		Preload("Sitter")
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.withRelations(r.db.WithContext(ctx)).First(&b, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &b, nil
}

// CountOverlapping counts bookings of the sitter on date whose time range
// overlaps slot. excludeID skips one booking (the one being updated); pass 0
// to count all.
func (r *BookingRepository) CountOverlapping(ctx context.Context, sitterID int64, date datatypes.Date, slot domain.TimeRange, excludeID int64) (int64, error) {
	return countOverlapping(r.db.WithContext(ctx), sitterID, date, slot, excludeID)
}

func countOverlapping(db *gorm.DB, sitterID int64, date datatypes.Date, slot domain.TimeRange, excludeID int64) (int64, error) {
	q := db.Model(&domain.Booking{}).Where(overlapCondition, sitterID, date, slot.End, slot.Start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// CreateIfSlotFree inserts b. When a sitter is assigned, the overlap check and
// the insert share one transaction holding a row lock on the sitter.
func (r *BookingRepository) CreateIfSlotFree(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := guardSitterSlot(tx, b, 0); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(b).Error
	})
	return translateError(err)
}

// UpdateIfSlotFree writes every column of b to its existing row under the same guard as
// CreateIfSlotFree, ignoring b's own current slot.
func (r *BookingRepository) UpdateIfSlotFree(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := guardSitterSlot(tx, b, b.ID); err != nil {
			return err
		}
		return updateRow(tx, &domain.Booking{}, b, b.ID)
	})
	return translateError(err)
}

func guardSitterSlot(tx *gorm.DB, b *domain.Booking, excludeID int64) error {
	if b.SitterID == nil {
		return nil
	}

	var sitter domain.User
	lock := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&sitter, *b.SitterID)
	if lock.Error != nil {
		return lock.Error
	}

	n, err := countOverlapping(tx, *b.SitterID, b.BookingDate, b.Slot(), excludeID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrTimeSlotTaken
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id, statusID int64) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status_id", statusID)
	if tx.Error != nil {
		return translateError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Booking{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Find(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	q := r.withRelations(r.db.WithContext(ctx)).Model(&domain.Booking{})

	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.SitterID != nil {
		q = q.Where("sitter_id = ?", *f.SitterID)
	}
	if f.PetID != nil {
		q = q.Where("pet_id = ?", *f.PetID)
	}
	if f.StatusID != nil {
		q = q.Where("status_id = ?", *f.StatusID)
	}
	if f.BookingDate != nil {
		q = q.Where("booking_date = ?", *f.BookingDate)
	}

	var out []domain.Booking
	if err := q.Order("booking_date, start_time, id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindUpcoming lists bookings on or after q.From in which the user takes part,
// ordered by date then start time.
func (r *BookingRepository) FindUpcoming(ctx context.Context, q UpcomingQuery) ([]domain.Booking, error) {
	db := r.withRelations(r.db.WithContext(ctx)).Where("booking_date >= ?", q.From)

	switch q.As {
	case ParticipantOwner:
		db = db.Where("owner_id = ?", q.UserID)
	case ParticipantSitter:
		db = db.Where("sitter_id = ?", q.UserID)
	default:
		db = db.Where("owner_id = ? OR sitter_id = ?", q.UserID, q.UserID)
	}

	var out []domain.Booking
	if err := db.Order("booking_date, start_time").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByDateRange lists bookings with from <= booking_date <= to.
func (r *BookingRepository) FindByDateRange(ctx context.Context, from, to datatypes.Date) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("booking_date BETWEEN ? AND ?", from, to).
		Order("booking_date, start_time").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
