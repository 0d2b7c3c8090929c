// Package server assembles repositories, services and handlers into the HTTP
// API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"whiskerwatch/internal/config"
	"whiskerwatch/internal/middleware"
	"whiskerwatch/internal/modules/admin"
	"whiskerwatch/internal/modules/auth"
	"whiskerwatch/internal/modules/booking"
	"whiskerwatch/internal/modules/notification"
	"whiskerwatch/internal/modules/pet"
	"whiskerwatch/internal/modules/reference"
	"whiskerwatch/internal/modules/user"
	"whiskerwatch/internal/pkg/jwt"
	"whiskerwatch/internal/pkg/password"
	"whiskerwatch/internal/pkg/validator"
	"whiskerwatch/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg    *config.Config
	db     *gorm.DB
	hub    *notification.Hub
	engine *gin.Engine
}

func New(cfg *config.Config, db *gorm.DB) *Server {
	s := &Server{
		cfg: cfg,
		db:  db,
		hub: notification.NewHub(),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	validator.UseJSONNames()

	// Repositories
	userRepo := repository.NewUserRepository(s.db)
	petRepo := repository.NewPetRepository(s.db)
	bookingRepo := repository.NewBookingRepository(s.db)
	refRepo := repository.NewReferenceRepository(s.db)
	statsRepo := repository.NewStatsRepository(s.db)

	// Services
	tokens := jwt.New(s.cfg.Auth.JWTSecret, s.cfg.Auth.JWTTTL)
	hasher := password.NewBcrypt(s.cfg.Auth.BcryptCost)

	authHandler := auth.NewHandler(auth.NewService(userRepo, tokens, hasher))
	userHandler := user.NewHandler(user.NewService(userRepo, refRepo, hasher))
	petHandler := pet.NewHandler(pet.NewService(petRepo, userRepo, refRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, petRepo, userRepo, refRepo, s.hub))
	adminHandler := admin.NewHandler(admin.NewService(statsRepo, userRepo))
	referenceHandler := reference.NewHandler(refRepo)
	wsHandler := notification.NewHandler(s.hub, tokens, s.cfg.Server.CORSAllowedOrigins)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.CORS(s.cfg.Server.CORSAllowedOrigins),
	)

	r.GET("/health", s.health)

	api := r.Group("/api")

	// public
	public := api.Group("")
	public.Use(middleware.OptionalJWTAuth(tokens))
	{
		authHandler.RegisterPublicRoutes(public)
		referenceHandler.RegisterRoutes(public)
		wsHandler.RegisterRoutes(public)
	}

	// protected
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(tokens))
	{
		authHandler.RegisterProtectedRoutes(protected)
		userHandler.RegisterRoutes(public, protected)
		petHandler.RegisterRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
	}

	// admin
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWTAuth(tokens), middleware.AdminOnly())
	{
		adminHandler.RegisterRoutes(adminGroup)
		adminGroup.GET("/users", userHandler.GetUsers)
		adminGroup.DELETE("/users/:id", userHandler.DeleteUser)
		adminGroup.GET("/pets", petHandler.GetPets)
		adminGroup.GET("/bookings", bookingHandler.GetBookings)
		adminGroup.DELETE("/bookings/:id", bookingHandler.DeleteBooking)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		slog.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "onlineUsers": s.hub.OnlineCount()})
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", srv.Addr, "env", s.cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
