package repository

import (
	"context"
	"testing"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_UniqueIndexesMapToConflict(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)

	existing := testdb.User(t, db, "olivia", domain.CustomerOwner)

	dup := &domain.User{
		Username:     "someone",
		Email:        "  OLIVIA@example.com ",
		PasswordHash: "x",
		RoleID:       existing.RoleID,
		FirstName:    "S",
		LastName:     "O",
		PhoneNumber:  "555-other",
		IsActive:     true,
	}
	err := repo.Create(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepository_GetByEmailIsCaseInsensitive(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)

	testdb.User(t, db, "olivia", domain.CustomerOwner)

	u, err := repo.GetByEmail(context.Background(), "Olivia@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "olivia", u.Username)
	assert.Equal(t, domain.RoleCustomer, u.RoleName())
	assert.Equal(t, domain.CustomerOwner, u.CustomerTypeName())

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_FindSession(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := testdb.User(t, db, "sam", domain.CustomerSitter)
	plain := testdb.User(t, db, "pat", "")

	s, err := repo.FindSession(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, s.UserID)
	assert.Equal(t, domain.RoleCustomer, s.Role)
	assert.Equal(t, domain.CustomerSitter, s.CustomerType)
	assert.True(t, s.IsActive)

	s, err = repo.FindSession(ctx, plain.ID)
	require.NoError(t, err)
	assert.Empty(t, s.CustomerType)

	_, err = repo.FindSession(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_FindFilters(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	testdb.User(t, db, "olivia", domain.CustomerOwner)
	sam := testdb.User(t, db, "sam", domain.CustomerSitter)
	require.NoError(t, db.Model(sam).Update("is_active", false).Error)

	sitters, err := repo.Find(ctx, UserFilter{CustomerType: "sitter"})
	require.NoError(t, err)
	require.Len(t, sitters, 1)
	assert.Equal(t, "sam", sitters[0].Username)

	active := true
	actives, err := repo.Find(ctx, UserFilter{IsActive: &active})
	require.NoError(t, err)
	require.Len(t, actives, 1)
	assert.Equal(t, "olivia", actives[0].Username)

	byEmail, err := repo.Find(ctx, UserFilter{EmailContains: "OLIV"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	customers, err := repo.Find(ctx, UserFilter{Role: domain.RoleCustomer})
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := testdb.User(t, db, "olivia", domain.CustomerOwner)
	sitter := testdb.User(t, db, "sam", domain.CustomerSitter)
	other := testdb.User(t, db, "otto", domain.CustomerOwner)

	rex := testdb.Pet(t, db, owner.ID, "Rex")
	tom := testdb.Pet(t, db, other.ID, "Tom")

	testdb.Booking(t, db, rex, &sitter.ID, "2024-06-01", "09:00", "10:00")
	testdb.Booking(t, db, rex, nil, "2024-06-02", "09:00", "10:00")
	sat := testdb.Booking(t, db, tom, &sitter.ID, "2024-06-03", "09:00", "10:00")
	keep := testdb.Booking(t, db, tom, nil, "2024-06-03", "11:00", "12:00")

	res, err := repo.DeleteCascade(ctx, sitter.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Bookings)
	assert.Zero(t, res.Pets)

	res, err = repo.DeleteCascade(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Bookings)
	assert.Equal(t, int64(1), res.Pets)

	var remaining []int64
	require.NoError(t, db.Model(&domain.Booking{}).Order("id").Pluck("id", &remaining).Error)
	assert.Equal(t, []int64{keep.ID}, remaining)
	assert.NotEqual(t, sat.ID, keep.ID)

	_, err = repo.GetByID(ctx, owner.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.DeleteCascade(ctx, owner.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "retry after success reports not found")
}

func TestUserRepository_ActivityCounts(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)

	owner := testdb.User(t, db, "olivia", domain.CustomerOwner)
	sitter := testdb.User(t, db, "sam", domain.CustomerBoth)
	rex := testdb.Pet(t, db, owner.ID, "Rex")
	testdb.Pet(t, db, sitter.ID, "Tom")
	testdb.Booking(t, db, rex, &sitter.ID, "2024-06-01", "09:00", "10:00")
	testdb.Booking(t, db, rex, &sitter.ID, "2024-06-02", "09:00", "10:00")

	counts, err := repo.ActivityCounts(context.Background(), []int64{owner.ID, sitter.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.UserActivity{OwnedPets: 1, OwnerBookings: 2}, counts[owner.ID])
	assert.Equal(t, domain.UserActivity{OwnedPets: 1, SitterBookings: 2}, counts[sitter.ID])
}

func TestUserRepository_Update(t *testing.T) {
	db := testdb.Open(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := testdb.User(t, db, "olivia", domain.CustomerOwner)
	u.FirstName = "Liv"
	u.Email = " LIV@Example.com"
	u.CustomerTypeID = nil
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Liv", got.FirstName)
	assert.Equal(t, "liv@example.com", got.Email)
	assert.Nil(t, got.CustomerTypeID)

	require.NoError(t, db.Delete(&domain.User{}, u.ID).Error)
	assert.ErrorIs(t, repo.Update(ctx, u), domain.ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&domain.User{}).Where("id = ?", u.ID).Count(&n).Error)
	assert.Zero(t, n, "update must not recreate the row")
}
