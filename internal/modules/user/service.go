package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/pkg/password"
	"whiskerwatch/internal/repository"
)

type Service struct {
	users  UserRepository
	refs   ReferenceRepository
	hasher password.Hasher
}

func NewService(users UserRepository, refs ReferenceRepository, hasher password.Hasher) *Service {
	return &Service{users: users, refs: refs, hasher: hasher}
}

// CreateUser registers a user. Uniqueness is checked in the order username,
// email, phone before anything is written. The role defaults to CUSTOMER and
// only an admin actor may grant ADMIN.
func (s *Service) CreateUser(ctx context.Context, actor *domain.Session, req CreateUserRequest) (*domain.User, error) {
	if err := s.checkUnique(ctx, req.Username, req.Email, req.PhoneNumber, 0); err != nil {
		return nil, err
	}

	role, err := s.resolveRole(ctx, actor, req.RoleID, nil)
	if err != nil {
		return nil, err
	}
	customerTypeID, err := s.resolveCustomerType(ctx, req.CustomerTypeID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Username:       strings.TrimSpace(req.Username),
		Email:          normalizeEmail(req.Email),
		PasswordHash:   hash,
		RoleID:         role.ID,
		CustomerTypeID: customerTypeID,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		Address:        strings.TrimSpace(req.Address),
		IsActive:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", u.ID, "role", role.RoleName)
	return s.GetUser(ctx, u.ID)
}

// UpdateUser replaces the profile of an existing user. Only an admin may
// switch an inactive account back on.
func (s *Service) UpdateUser(ctx context.Context, actor *domain.Session, id int64, req UpdateUserRequest) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	if req.IsActive != nil && *req.IsActive && !u.IsActive && !actor.IsAdmin() {
		return nil, ErrReactivateDenied
	}

	if err := s.checkUnique(ctx, req.Username, req.Email, req.PhoneNumber, id); err != nil {
		return nil, err
	}

	role, err := s.resolveRole(ctx, actor, req.RoleID, u)
	if err != nil {
		return nil, err
	}
	customerTypeID, err := s.resolveCustomerType(ctx, req.CustomerTypeID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Password) != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	u.Username = strings.TrimSpace(req.Username)
	u.Email = normalizeEmail(req.Email)
	u.RoleID = role.ID
	u.CustomerTypeID = customerTypeID
	u.FirstName = strings.TrimSpace(req.FirstName)
	u.LastName = strings.TrimSpace(req.LastName)
	u.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	u.Address = strings.TrimSpace(req.Address)
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	u.Role, u.CustomerType = nil, nil

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the user with every booking they take part in and every
// pet they own, atomically. A retry after success reports not found.
func (s *Service) DeleteUser(ctx context.Context, id int64) (*repository.CascadeResult, error) {
	res, err := s.users.DeleteCascade(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	slog.Info("user deleted", "user_id", id, "bookings", res.Bookings, "pets", res.Pets)
	return res, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	if err := s.attachActivity(ctx, []*domain.User{u}); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	if err := s.attachActivity(ctx, []*domain.User{u}); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUsers applies only the first populated criterion of f.
func (s *Service) GetUsers(ctx context.Context, f Filter) ([]domain.User, error) {
	var rf repository.UserFilter

	switch {
	case strings.TrimSpace(f.Email) != "":
		rf.EmailContains = strings.TrimSpace(f.Email)
	case strings.TrimSpace(f.CustomerType) != "":
		ct, err := s.refs.CustomerTypeByName(ctx, strings.TrimSpace(f.CustomerType))
		if err != nil {
			return nil, validationIfMissing(err)
		}
		rf.CustomerType = ct.TypeName
	case f.IsActive != nil:
		rf.IsActive = f.IsActive
	case strings.TrimSpace(f.Role) != "":
		return s.GetUsersByRole(ctx, f.Role)
	}

	return s.list(ctx, rf)
}

func (s *Service) GetUsersByRole(ctx context.Context, roleName string) ([]domain.User, error) {
	role, err := s.refs.RoleByName(ctx, strings.TrimSpace(roleName))
	if err != nil {
		return nil, validationIfMissing(err)
	}
	return s.list(ctx, repository.UserFilter{Role: role.RoleName})
}

func (s *Service) GetActiveUsers(ctx context.Context) ([]domain.User, error) {
	active := true
	return s.list(ctx, repository.UserFilter{IsActive: &active})
}

func (s *Service) list(ctx context.Context, f repository.UserFilter) ([]domain.User, error) {
	users, err := s.users.Find(ctx, f)
	if err != nil {
		return nil, err
	}

	ptrs := make([]*domain.User, len(users))
	for i := range users {
		ptrs[i] = &users[i]
	}
	if err := s.attachActivity(ctx, ptrs); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) attachActivity(ctx context.Context, users []*domain.User) error {
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	counts, err := s.users.ActivityCounts(ctx, ids)
	if err != nil {
		return err
	}
	for _, u := range users {
		a := counts[u.ID]
		u.Activity = &a
	}
	return nil
}

func (s *Service) checkUnique(ctx context.Context, username, email, phone string, excludeID int64) error {
	checks := []struct {
		lookup func(context.Context, string) (*domain.User, error)
		value  string
		err    error
	}{
		{s.users.GetByUsername, strings.TrimSpace(username), ErrUsernameTaken},
		{s.users.GetByEmail, normalizeEmail(email), ErrEmailTaken},
		{s.users.GetByPhone, strings.TrimSpace(phone), ErrPhoneTaken},
	}

	for _, c := range checks {
		existing, err := c.lookup(ctx, c.value)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			continue
		case err != nil:
			return err
		case existing.ID != excludeID:
			return c.err
		}
	}
	return nil
}

// resolveRole picks the requested role, the current role of existing when
// none is requested, or CUSTOMER.
func (s *Service) resolveRole(ctx context.Context, actor *domain.Session, roleID *int64, existing *domain.User) (*domain.Role, error) {
	var (
		role *domain.Role
		err  error
	)
	switch {
	case roleID != nil:
		role, err = s.refs.RoleByID(ctx, *roleID)
	case existing != nil:
		role, err = s.refs.RoleByID(ctx, existing.RoleID)
	default:
		role, err = s.refs.RoleByName(ctx, domain.RoleCustomer)
	}
	if err != nil {
		return nil, notFoundAs(err, ErrRoleNotFound)
	}

	granting := role.RoleName == domain.RoleAdmin && (existing == nil || existing.RoleID != role.ID)
	if granting && (actor == nil || !actor.IsAdmin()) {
		return nil, ErrAdminRoleRequired
	}
	return role, nil
}

func (s *Service) resolveCustomerType(ctx context.Context, id *int64) (*int64, error) {
	if id == nil {
		return nil, nil
	}
	ct, err := s.refs.CustomerTypeByID(ctx, *id)
	if err != nil {
		return nil, notFoundAs(err, ErrCustomerTypeNotFound)
	}
	return &ct.ID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func notFoundAs(err, target error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return target
	}
	return err
}

func validationIfMissing(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrUnknownFilter
	}
	return err
}
