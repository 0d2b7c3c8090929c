package database

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

type slogGooseLogger struct{}

func (slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), "component", "migrations")
}

// Fatalf logs at error level and does not exit the process.
func (slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "migrations")
}

func setupGoose() {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(slogGooseLogger{})
	_ = goose.SetDialect("postgres")
}

// Migrate runs a goose command (up, down, status, version, redo, reset)
// against the Postgres database behind db.
func Migrate(ctx context.Context, db *gorm.DB, command string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	setupGoose()

	switch command {
	case "up":
		err = goose.UpContext(ctx, sqlDB, migrationsDir)
	case "down":
		err = goose.DownContext(ctx, sqlDB, migrationsDir)
	case "redo":
		err = goose.RedoContext(ctx, sqlDB, migrationsDir)
	case "reset":
		err = goose.ResetContext(ctx, sqlDB, migrationsDir)
	case "status":
		err = goose.StatusContext(ctx, sqlDB, migrationsDir)
	case "version":
		err = goose.VersionContext(ctx, sqlDB, migrationsDir)
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

func MigrateUp(ctx context.Context, db *gorm.DB) error {
	return Migrate(ctx, db, "up")
}
