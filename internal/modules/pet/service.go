package pet

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/repository"
)

type Service struct {
	pets  PetRepository
	users UserRepository
	types PetTypeRepository
}

func NewService(pets PetRepository, users UserRepository, types PetTypeRepository) *Service {
	return &Service{pets: pets, users: users, types: types}
}

func (s *Service) CreatePet(ctx context.Context, req PetRequest) (*PetView, error) {
	if err := s.resolveRefs(ctx, req); err != nil {
		return nil, err
	}

	p := &domain.Pet{IsActive: true}
	apply(p, req)
	if err := s.pets.Create(ctx, p); err != nil {
		return nil, err
	}

	slog.Info("pet created", "pet_id", p.ID, "owner_id", p.OwnerID)
	return s.GetPet(ctx, p.ID)
}

// UpdatePet replaces the mutable fields of a pet. The active flag changes only
// when the request carries one.
func (s *Service) UpdatePet(ctx context.Context, id int64, req PetRequest) (*PetView, error) {
	p, err := s.pets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrPetNotFound)
	}
	if err := s.resolveRefs(ctx, req); err != nil {
		return nil, err
	}

	apply(p, req)
	p.Owner, p.Type = nil, nil
	if err := s.pets.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.GetPet(ctx, id)
}

// DeletePet removes the pet and its bookings in one transaction.
func (s *Service) DeletePet(ctx context.Context, id int64) (*repository.CascadeResult, error) {
	res, err := s.pets.DeleteCascade(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrPetNotFound)
	}

	slog.Info("pet deleted", "pet_id", id, "bookings", res.Bookings)
	return res, nil
}

// IsPetOwner reports false without error for a pet that does not exist.
func (s *Service) IsPetOwner(ctx context.Context, petID, userID int64) (bool, error) {
	return s.pets.IsOwnedBy(ctx, petID, userID)
}

// CanModify reports whether actor may change or delete the pet.
func (s *Service) CanModify(ctx context.Context, actor *domain.Session, petID int64) error {
	if actor.IsAdmin() {
		return nil
	}
	if _, err := s.pets.GetByID(ctx, petID); err != nil {
		return notFoundAs(err, ErrPetNotFound)
	}
	if actor == nil {
		return ErrNotPetOwner
	}

	owns, err := s.IsPetOwner(ctx, petID, actor.UserID)
	if err != nil {
		return err
	}
	if !owns {
		return ErrNotPetOwner
	}
	return nil
}

func (s *Service) GetPet(ctx context.Context, id int64) (*PetView, error) {
	p, err := s.pets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrPetNotFound)
	}
	views, err := s.withCounts(ctx, []domain.Pet{*p})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetPets applies only the first populated criterion of f.
func (s *Service) GetPets(ctx context.Context, f Filter) ([]PetView, error) {
	switch {
	case f.OwnerID != nil:
		return s.GetPetsByOwner(ctx, *f.OwnerID)
	case strings.TrimSpace(f.PetType) != "":
		return s.GetPetsByType(ctx, f.PetType)
	case f.IsActive != nil:
		return s.list(ctx, repository.PetFilter{IsActive: f.IsActive})
	}
	return s.list(ctx, repository.PetFilter{})
}

func (s *Service) GetPetsByOwner(ctx context.Context, ownerID int64) ([]PetView, error) {
	return s.list(ctx, repository.PetFilter{OwnerID: &ownerID})
}

func (s *Service) GetActivePets(ctx context.Context) ([]PetView, error) {
	active := true
	return s.list(ctx, repository.PetFilter{IsActive: &active})
}

func (s *Service) GetPetsByType(ctx context.Context, typeName string) ([]PetView, error) {
	pt, err := s.types.PetTypeByName(ctx, strings.TrimSpace(typeName))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUnknownPetType
		}
		return nil, err
	}
	return s.list(ctx, repository.PetFilter{TypeID: &pt.ID})
}

func (s *Service) list(ctx context.Context, f repository.PetFilter) ([]PetView, error) {
	pets, err := s.pets.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, pets)
}

func (s *Service) withCounts(ctx context.Context, pets []domain.Pet) ([]PetView, error) {
	ids := make([]int64, len(pets))
	for i := range pets {
		ids[i] = pets[i].ID
	}

	counts, err := s.pets.BookingCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]PetView, len(pets))
	for i := range pets {
		views[i] = PetView{Pet: &pets[i], BookingsCount: counts[pets[i].ID]}
	}
	return views, nil
}

func (s *Service) resolveRefs(ctx context.Context, req PetRequest) error {
	if _, err := s.users.GetByID(ctx, req.OwnerID); err != nil {
		return notFoundAs(err, ErrOwnerNotFound)
	}
	if _, err := s.types.PetTypeByID(ctx, req.TypeID); err != nil {
		return notFoundAs(err, ErrPetTypeNotFound)
	}
	return nil
}

func apply(p *domain.Pet, req PetRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Age = req.Age
	p.Breed = strings.TrimSpace(req.Breed)
	p.Weight = req.Weight
	p.SpecialInstructions = req.SpecialInstructions
	p.OwnerID = req.OwnerID
	p.TypeID = req.TypeID
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}

func notFoundAs(err, target error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return target
	}
	return err
}
