// Command migrate applies the embedded goose migrations to DATABASE_URL.
//
//	migrate [up|down|redo|reset|status|version]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"whiskerwatch/internal/config"
	"whiskerwatch/internal/database"
	"whiskerwatch/internal/pkg/logger"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Server.LogLevel)

	if !database.IsPostgres(cfg.Database.URL) {
		slog.Error("migrations target postgres only; sqlite databases use AUTO_MIGRATE")
		os.Exit(2)
	}

	db, err := database.Connect(cfg.Database.URL, cfg.Database.Debug)
	if err != nil {
		slog.Error("connect database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(context.Background(), db, command); err != nil {
		slog.Error("migrate", "command", command, "error", err)
		os.Exit(1)
	}
	slog.Info("migrate finished", "command", command)
}
