// Command seed fills an empty database with reference rows and a small demo
// data set: one admin, two owners, two sitters, their pets and a few bookings.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"whiskerwatch/internal/config"
	"whiskerwatch/internal/database"
	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/modules/booking"
	"whiskerwatch/internal/modules/pet"
	"whiskerwatch/internal/modules/user"
	"whiskerwatch/internal/pkg/logger"
	"whiskerwatch/internal/pkg/password"
	"whiskerwatch/internal/repository"
)

const demoPassword = "password123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Server.LogLevel)

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.Connect(cfg.Database.URL, cfg.Database.Debug)
	if err != nil {
		return err
	}
	if err := database.Prepare(ctx, db, cfg.Database.URL, true); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	refRepo := repository.NewReferenceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	users := user.NewService(userRepo, refRepo, password.NewBcrypt(cfg.Auth.BcryptCost))
	pets := pet.NewService(petRepo, userRepo, refRepo)
	bookings := booking.NewService(bookingRepo, petRepo, userRepo, refRepo, nil)

	if _, err := userRepo.GetByUsername(ctx, "admin"); err == nil {
		slog.Info("demo data already present, skipping")
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	adminRole, err := refRepo.RoleByName(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	seeder := &domain.Session{Role: domain.RoleAdmin}

	people := []demoUser{
		{"olivia", "Olivia", "Owens", domain.CustomerOwner},
		{"oscar", "Oscar", "Ortiz", domain.CustomerOwner},
		{"sam", "Sam", "Sitter", domain.CustomerSitter},
		{"bella", "Bella", "Both", domain.CustomerBoth},
	}

	admin := demoUser{username: "admin", first: "Ada", last: "Admin"}
	if _, err := createUser(ctx, users, refRepo, seeder, admin, 0, &adminRole.ID); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	created := make(map[string]*domain.User, len(people))
	for i, p := range people {
		u, err := createUser(ctx, users, refRepo, seeder, p, i+1, nil)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.username, err)
		}
		created[p.username] = u
	}

	dog, err := refRepo.PetTypeByName(ctx, "DOG")
	if err != nil {
		return err
	}
	cat, err := refRepo.PetTypeByName(ctx, "CAT")
	if err != nil {
		return err
	}

	age := 4
	rex, err := pets.CreatePet(ctx, pet.PetRequest{Name: "Rex", Age: &age, Breed: "Labrador", OwnerID: created["olivia"].ID, TypeID: dog.ID})
	if err != nil {
		return fmt.Errorf("create pet: %w", err)
	}
	luna, err := pets.CreatePet(ctx, pet.PetRequest{Name: "Luna", Breed: "Siamese", OwnerID: created["oscar"].ID, TypeID: cat.ID})
	if err != nil {
		return fmt.Errorf("create pet: %w", err)
	}

	day := time.Now().UTC().AddDate(0, 0, 3).Format(domain.DateLayout)
	sam, bella := created["sam"].ID, created["bella"].ID

	demo := []booking.BookingRequest{
		{BookingDate: day, StartTime: "09:00", EndTime: "11:00", PetID: rex.ID, OwnerID: rex.OwnerID, SitterID: &sam},
		{BookingDate: day, StartTime: "11:00", EndTime: "13:00", PetID: luna.ID, OwnerID: luna.OwnerID, SitterID: &sam},
		{BookingDate: day, StartTime: "10:00", EndTime: "12:00", PetID: luna.ID, OwnerID: luna.OwnerID, SitterID: &bella},
		{BookingDate: day, StartTime: "15:00", EndTime: "16:00", PetID: rex.ID, OwnerID: rex.OwnerID},
	}
	for _, req := range demo {
		if _, err := bookings.CreateBooking(ctx, req); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
	}

	slog.Info("demo data created", "users", len(people)+1, "pets", 2, "bookings", len(demo), "password", demoPassword)
	return nil
}

type demoUser struct {
	username, first, last, customerType string
}

func createUser(ctx context.Context, users *user.Service, refs *repository.ReferenceRepository, actor *domain.Session, u demoUser, n int, roleID *int64) (*domain.User, error) {
	req := user.CreateUserRequest{
		Username:    u.username,
		Email:       u.username + "@whiskerwatch.local",
		Password:    demoPassword,
		RoleID:      roleID,
		FirstName:   u.first,
		LastName:    u.last,
		PhoneNumber: fmt.Sprintf("555-02%02d", n),
		Address:     fmt.Sprintf("%d Demo Street", 200+n),
	}
	if u.customerType != "" {
		ct, err := refs.CustomerTypeByName(ctx, u.customerType)
		if err != nil {
			return nil, err
		}
		req.CustomerTypeID = &ct.ID
	}
	return users.CreateUser(ctx, actor, req)
}
