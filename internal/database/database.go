package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"whiskerwatch/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// IsPostgres reports whether dsn addresses a PostgreSQL server.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Connect opens dsn with the Postgres driver for postgres:// URLs and the
// pure-Go SQLite driver for everything else.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	if IsPostgres(dsn) {
		slog.Info("connecting to postgres")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	slog.Info("using sqlite", "dsn", dsn)
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        SQLiteDSN(dsn),
		}),
		cfg,
	)
}

// SQLiteDSN adds the connection options the repositories rely on unless dsn
// already sets them: enforced foreign keys, a busy timeout, and write
// transactions that take the database lock at BEGIN. SQLite has no row locks,
// so the immediate lock is what serializes concurrent booking writes.
func SQLiteDSN(dsn string) string {
	opts := []struct{ key, param string }{
		{"foreign_keys", "_pragma=foreign_keys(1)"},
		{"busy_timeout", "_pragma=busy_timeout(5000)"},
		{"_txlock", "_txlock=immediate"},
	}
	for _, o := range opts {
		if strings.Contains(dsn, o.key) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + o.param
	}
	return dsn
}

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&domain.Role{},
		&domain.CustomerType{},
		&domain.PetType{},
		&domain.BookingStatus{},
		&domain.User{},
		&domain.Pet{},
		&domain.Booking{},
	}
}

// AutoMigrate creates or alters tables from the entity definitions. It is used
// for SQLite and local development; Postgres deployments run the goose
// migrations instead.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Prepare brings the schema up to date for the connected dialect and makes
// sure the reference rows exist.
func Prepare(ctx context.Context, db *gorm.DB, dsn string, autoMigrate bool) error {
	if IsPostgres(dsn) {
		if err := MigrateUp(ctx, db); err != nil {
			return err
		}
	} else if autoMigrate {
		if err := AutoMigrate(db); err != nil {
			return err
		}
	}
	return SeedReference(ctx, db)
}

// SeedReference inserts any missing roles, customer types, pet types and
// booking statuses.
func SeedReference(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range domain.DefaultRoles {
			if err := tx.Where(domain.Role{RoleName: name}).FirstOrCreate(&domain.Role{}).Error; err != nil {
				return fmt.Errorf("seed role %s: %w", name, err)
			}
		}
		for _, name := range domain.DefaultCustomerTypes {
			if err := tx.Where(domain.CustomerType{TypeName: name}).FirstOrCreate(&domain.CustomerType{}).Error; err != nil {
				return fmt.Errorf("seed customer type %s: %w", name, err)
			}
		}
		for _, name := range domain.DefaultPetTypes {
			if err := tx.Where(domain.PetType{TypeName: name}).FirstOrCreate(&domain.PetType{}).Error; err != nil {
				return fmt.Errorf("seed pet type %s: %w", name, err)
			}
		}
		for _, name := range domain.DefaultBookingStatuses {
			if err := tx.Where(domain.BookingStatus{StatusName: name}).FirstOrCreate(&domain.BookingStatus{}).Error; err != nil {
				return fmt.Errorf("seed booking status %s: %w", name, err)
			}
		}
		return nil
	})
}
