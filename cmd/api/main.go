package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"whiskerwatch/internal/config"
	"whiskerwatch/internal/database"
	"whiskerwatch/internal/pkg/logger"
	"whiskerwatch/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Server.LogLevel)

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.Database.URL, cfg.Database.Debug)
	if err != nil {
		slog.Error("connect database", "error", err)
		os.Exit(1)
	}
	if err := database.Prepare(ctx, db, cfg.Database.URL, cfg.Database.AutoMigrate); err != nil {
		slog.Error("prepare database", "error", err)
		os.Exit(1)
	}

	if err := server.New(cfg, db).Run(ctx); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	slog.Info("bye")
}
