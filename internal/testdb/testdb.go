// Package testdb opens throwaway in-memory SQLite databases with the full
// schema and reference rows, plus small fixture builders for tests.
package testdb

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"whiskerwatch/internal/database"
	"whiskerwatch/internal/domain"

	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// Open returns a migrated and seeded database private to t.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:whiskerwatch_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	return open(t, dsn, 1)
}

// OpenFile returns a migrated and seeded database in a file under t's temp
// dir, opened the way the server opens SQLite, with up to conns concurrent
// connections.
func OpenFile(t *testing.T, conns int) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "whiskerwatch.db")
	return open(t, database.SQLiteDSN(dsn), conns)
}

func open(t *testing.T, dsn string, conns int) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedReference(context.Background(), db))
	return db
}

func refID(t *testing.T, db *gorm.DB, table, column, name string) int64 {
	t.Helper()

	var id int64
	err := db.Table(table).Select("id").Where(column+" = ?", name).Scan(&id).Error
	require.NoError(t, err)
	require.NotZero(t, id, "missing %s %s", table, name)
	return id
}

func RoleID(t *testing.T, db *gorm.DB, name string) int64 {
	return refID(t, db, "roles", "role_name", name)
}

func CustomerTypeID(t *testing.T, db *gorm.DB, name string) int64 {
	return refID(t, db, "customer_types", "type_name", name)
}

func PetTypeID(t *testing.T, db *gorm.DB, name string) int64 {
	return refID(t, db, "pet_types", "type_name", name)
}

func StatusID(t *testing.T, db *gorm.DB, name string) int64 {
	return refID(t, db, "booking_statuses", "status_name", name)
}

// User inserts an active customer whose email and phone derive from username.
func User(t *testing.T, db *gorm.DB, username, customerType string) *domain.User {
	t.Helper()

	u := &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		RoleID:       RoleID(t, db, domain.RoleCustomer),
		FirstName:    strings.ToUpper(username[:1]) + username[1:],
		LastName:     "Test",
		PhoneNumber:  fmt.Sprintf("555-%s", username),
		IsActive:     true,
	}
	if customerType != "" {
		ct := CustomerTypeID(t, db, customerType)
		u.CustomerTypeID = &ct
	}
	require.NoError(t, db.Omit("Role", "CustomerType").Create(u).Error)
	return u
}

func Pet(t *testing.T, db *gorm.DB, ownerID int64, name string) *domain.Pet {
	t.Helper()

	p := &domain.Pet{
		Name:     name,
		OwnerID:  ownerID,
		TypeID:   PetTypeID(t, db, "DOG"),
		IsActive: true,
	}
	require.NoError(t, db.Omit("Owner", "Type").Create(p).Error)
	return p
}

// Booking inserts a pending booking on date (2006-01-02) from start to end
// (15:04) without any overlap check.
func Booking(t *testing.T, db *gorm.DB, pet *domain.Pet, sitterID *int64, date, start, end string) *domain.Booking {
	t.Helper()

	d, err := domain.ParseDate(date)
	require.NoError(t, err)
	slot, err := domain.NewTimeRange(start, end)
	require.NoError(t, err)

	b := &domain.Booking{
		BookingDate: d,
		StartTime:   slot.Start,
		EndTime:     slot.End,
		StatusID:    StatusID(t, db, domain.StatusPending),
		PetID:       pet.ID,
		OwnerID:     pet.OwnerID,
		SitterID:    sitterID,
	}
	require.NoError(t, db.Omit("Status", "Pet", "Owner", "Sitter").Create(b).Error)
	return b
}
