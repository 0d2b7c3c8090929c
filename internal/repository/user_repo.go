package repository

import (
	"context"
	"strings"

	"whiskerwatch/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UserFilter narrows a user listing. Zero-valued fields are ignored.
type UserFilter struct {
	EmailContains string
	CustomerType  string
	Role          string
	IsActive      *bool
}

// CascadeResult reports how many dependent rows a cascading delete removed.
type CascadeResult struct {
	Bookings int64 `json:"bookings"`
	Pets     int64 `json:"pets"`
}

func (r *UserRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Role").Preload("CustomerType")
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	tx := r.db.WithContext(ctx).Omit(clause.Associations).Create(u)
	return translateError(tx.Error)
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	return translateError(updateRow(r.db.WithContext(ctx), &domain.User{}, u, u.ID))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.withRelations(ctx).First(&u, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	tx := r.withRelations(ctx).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		First(&u)
	if tx.Error != nil {
		return nil, translateError(tx.Error)
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := r.withRelations(ctx).Where("username = ?", strings.TrimSpace(username)).First(&u).Error; err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var u domain.User
	if err := r.withRelations(ctx).Where("phone_number = ?", strings.TrimSpace(phone)).First(&u).Error; err != nil {
		return nil, translateError(err)
	}
	return &u, nil
}

func (r *UserRepository) Find(ctx context.Context, f UserFilter) ([]domain.User, error) {
	q := r.withRelations(ctx).Model(&domain.User{})

	if f.EmailContains != "" {
		q = q.Where("LOWER(users.email) LIKE ?", "%"+strings.ToLower(f.EmailContains)+"%")
	}
	if f.CustomerType != "" {
		q = q.Joins("JOIN customer_types ct ON ct.id = users.customer_type_id").
			Where("ct.type_name = ?", strings.ToUpper(f.CustomerType))
	}
	if f.Role != "" {
		q = q.Joins("JOIN roles r ON r.id = users.role_id").
			Where("r.role_name = ?", strings.ToUpper(f.Role))
	}
	if f.IsActive != nil {
		q = q.Where("users.is_active = ?", *f.IsActive)
	}

	var users []domain.User
	if err := q.Order("users.id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// SetActive flips the active flag of a user.
func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindSession resolves the authenticated view of a user with an explicit join
// over roles and customer types.
func (r *UserRepository) FindSession(ctx context.Context, userID int64) (*domain.Session, error) {
	var row struct {
		UserID       int64
		Username     string
		Email        string
		IsActive     bool
		Role         string
		CustomerType *string
	}

	q := `
SELECT u.id AS user_id, u.username, u.email, u.is_active,
       r.role_name AS role, ct.type_name AS customer_type
FROM users u
JOIN roles r ON r.id = u.role_id
LEFT JOIN customer_types ct ON ct.id = u.customer_type_id
WHERE u.id = ?
`
	tx := r.db.WithContext(ctx).Raw(q, userID).Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	s := &domain.Session{
		UserID:   row.UserID,
		Username: row.Username,
		Email:    row.Email,
		Role:     row.Role,
		IsActive: row.IsActive,
	}
	if row.CustomerType != nil {
		s.CustomerType = *row.CustomerType
	}
	return s, nil
}

// ActivityCounts returns pet and booking counts for each of the given users.
func (r *UserRepository) ActivityCounts(ctx context.Context, ids []int64) (map[int64]domain.UserActivity, error) {
	out := make(map[int64]domain.UserActivity, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	type countRow struct {
		ID int64
		N  int64
	}

	count := func(model any, column string) ([]countRow, error) {
		var rows []countRow
		err := r.db.WithContext(ctx).
			Model(model).
			Select(column+" AS id, COUNT(*) AS n").
			Where(column+" IN ?", ids).
			Group(column).
			Scan(&rows).Error
		return rows, err
	}

	pets, err := count(&domain.Pet{}, "owner_id")
	if err != nil {
		return nil, err
	}
	owned, err := count(&domain.Booking{}, "owner_id")
	if err != nil {
		return nil, err
	}
	sat, err := count(&domain.Booking{}, "sitter_id")
	if err != nil {
		return nil, err
	}

	for _, row := range pets {
		a := out[row.ID]
		a.OwnedPets = row.N
		out[row.ID] = a
	}
	for _, row := range owned {
		a := out[row.ID]
		a.OwnerBookings = row.N
		out[row.ID] = a
	}
	for _, row := range sat {
		a := out[row.ID]
		a.SitterBookings = row.N
		out[row.ID] = a
	}
	return out, nil
}

// DeleteCascade removes a user together with every booking the user takes
// part in and every pet the user owns, in dependency order inside a single
// transaction. A failure rolls everything back.
func (r *UserRepository) DeleteCascade(ctx context.Context, id int64) (*CascadeResult, error) {
	res := &CascadeResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}

		var petIDs []int64
		if err := tx.Model(&domain.Pet{}).Where("owner_id = ?", id).Pluck("id", &petIDs).Error; err != nil {
			return err
		}

		del := tx.Where("owner_id = ? OR sitter_id = ?", id, id).Delete(&domain.Booking{})
		if del.Error != nil {
			return del.Error
		}
		res.Bookings = del.RowsAffected

		if len(petIDs) > 0 {
			del = tx.Where("pet_id IN ?", petIDs).Delete(&domain.Booking{})
			if del.Error != nil {
				return del.Error
			}
			res.Bookings += del.RowsAffected

			del = tx.Where("id IN ?", petIDs).Delete(&domain.Pet{})
			if del.Error != nil {
				return del.Error
			}
			res.Pets = del.RowsAffected
		}

		return tx.Delete(&domain.User{}, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return res, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
