package user

import (
	"context"
	"errors"
	"testing"

	"whiskerwatch/internal/domain"
	"whiskerwatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 100
	}
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.user(m.Called(ctx, username))
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return m.user(m.Called(ctx, phone))
}

func (m *MockUserRepository) Find(ctx context.Context, f repository.UserFilter) ([]domain.User, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) ActivityCounts(ctx context.Context, ids []int64) (map[int64]domain.UserActivity, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.UserActivity), args.Error(1)
}

func (m *MockUserRepository) DeleteCascade(ctx context.Context, id int64) (*repository.CascadeResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CascadeResult), args.Error(1)
}

type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) RoleByID(ctx context.Context, id int64) (*domain.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockReferenceRepository) RoleByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockReferenceRepository) CustomerTypeByID(ctx context.Context, id int64) (*domain.CustomerType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerType), args.Error(1)
}

func (m *MockReferenceRepository) CustomerTypeByName(ctx context.Context, name string) (*domain.CustomerType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerType), args.Error(1)
}

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

var (
	customerRole = &domain.Role{ID: 1, RoleName: domain.RoleCustomer}
	adminRole    = &domain.Role{ID: 2, RoleName: domain.RoleAdmin}
)

func ptr[T any](v T) *T { return &v }

func createRequest() CreateUserRequest {
	return CreateUserRequest{
		Username:    "olivia",
		Email:       " Olivia@Example.com ",
		Password:    "secret1",
		FirstName:   "Olivia",
		LastName:    "Owner",
		PhoneNumber: "555-0100",
		Address:     "1 Main St",
	}
}

func expectNoDuplicates(users *MockUserRepository) {
	users.On("GetByUsername", mock.Anything, "olivia").Return(nil, domain.ErrNotFound)
	users.On("GetByEmail", mock.Anything, "olivia@example.com").Return(nil, domain.ErrNotFound)
	users.On("GetByPhone", mock.Anything, "555-0100").Return(nil, domain.ErrNotFound)
}

func TestService_CreateUser_DefaultsToCustomer(t *testing.T) {
	users := new(MockUserRepository)
	refs := new(MockReferenceRepository)
	svc := NewService(users, refs, fakeHasher{})
	ctx := context.Background()

	expectNoDuplicates(users)
	refs.On("RoleByName", ctx, domain.RoleCustomer).Return(customerRole, nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.RoleID == 1 && u.Email == "olivia@example.com" && u.PasswordHash == "hashed:secret1" && u.IsActive
	})).Return(nil)
	users.On("GetByID", ctx, int64(100)).Return(&domain.User{ID: 100, Username: "olivia", Role: customerRole}, nil)
	users.On("ActivityCounts", ctx, []int64{100}).Return(map[int64]domain.UserActivity{}, nil)

	u, err := svc.CreateUser(ctx, nil, createRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, u.RoleName())
	require.NotNil(t, u.Activity)
	assert.Zero(t, u.Activity.OwnedPets)
	users.AssertExpectations(t)
	refs.AssertExpectations(t)
}

func TestService_CreateUser_DuplicatesConflictInOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("username first", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, new(MockReferenceRepository), fakeHasher{})
		users.On("GetByUsername", ctx, "olivia").Return(&domain.User{ID: 9}, nil)

		_, err := svc.CreateUser(ctx, nil, createRequest())
		assert.ErrorIs(t, err, ErrUsernameTaken)
		assert.ErrorIs(t, err, domain.ErrConflict)
		users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("email", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, new(MockReferenceRepository), fakeHasher{})
		users.On("GetByUsername", ctx, "olivia").Return(nil, domain.ErrNotFound)
		users.On("GetByEmail", ctx, "olivia@example.com").Return(&domain.User{ID: 9}, nil)

		_, err := svc.CreateUser(ctx, nil, createRequest())
		assert.ErrorIs(t, err, ErrEmailTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("phone", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, new(MockReferenceRepository), fakeHasher{})
		users.On("GetByUsername", ctx, "olivia").Return(nil, domain.ErrNotFound)
		users.On("GetByEmail", ctx, "olivia@example.com").Return(nil, domain.ErrNotFound)
		users.On("GetByPhone", ctx, "555-0100").Return(&domain.User{ID: 9}, nil)

		_, err := svc.CreateUser(ctx, nil, createRequest())
		assert.ErrorIs(t, err, ErrPhoneTaken)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_CreateUser_AdminRoleNeedsAdminActor(t *testing.T) {
	users := new(MockUserRepository)
	refs := new(MockReferenceRepository)
	svc := NewService(users, refs, fakeHasher{})
	ctx := context.Background()

	expectNoDuplicates(users)
	refs.On("RoleByID", ctx, int64(2)).Return(adminRole, nil)

	req := createRequest()
	req.RoleID = ptr(int64(2))

	_, err := svc.CreateUser(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.CreateUser(ctx, &domain.Session{UserID: 5, Role: domain.RoleCustomer}, req)
	assert.ErrorIs(t, err, ErrAdminRoleRequired)

	users.On("Create", ctx, mock.Anything).Return(nil)
	users.On("GetByID", ctx, int64(100)).Return(&domain.User{ID: 100, Role: adminRole}, nil)
	users.On("ActivityCounts", ctx, []int64{100}).Return(map[int64]domain.UserActivity{}, nil)

	u, err := svc.CreateUser(ctx, &domain.Session{UserID: 1, Role: domain.RoleAdmin}, req)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.RoleName())
}

func TestService_CreateUser_UnknownCustomerType(t *testing.T) {
	users := new(MockUserRepository)
	refs := new(MockReferenceRepository)
	svc := NewService(users, refs, fakeHasher{})
	ctx := context.Background()

	expectNoDuplicates(users)
	refs.On("RoleByName", ctx, domain.RoleCustomer).Return(customerRole, nil)
	refs.On("CustomerTypeByID", ctx, int64(77)).Return(nil, domain.ErrNotFound)

	req := createRequest()
	req.CustomerTypeID = ptr(int64(77))
	_, err := svc.CreateUser(ctx, nil, req)
	assert.ErrorIs(t, err, ErrCustomerTypeNotFound)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	self := &domain.Session{UserID: 5, Role: domain.RoleCustomer}

	update := UpdateUserRequest{
		Username:    "olivia",
		Email:       "olivia@example.com",
		FirstName:   "Liv",
		LastName:    "Owner",
		PhoneNumber: "555-0100",
		Address:     "2 Main St",
	}

	t.Run("keeps password and flag when omitted", func(t *testing.T) {
		users := new(MockUserRepository)
		refs := new(MockReferenceRepository)
		svc := NewService(users, refs, fakeHasher{})

		current := &domain.User{ID: 5, Username: "olivia", PasswordHash: "old", RoleID: 1, IsActive: true, Role: customerRole}
		users.On("GetByID", ctx, int64(5)).Return(current, nil)
		users.On("GetByUsername", ctx, "olivia").Return(&domain.User{ID: 5}, nil)
		users.On("GetByEmail", ctx, "olivia@example.com").Return(&domain.User{ID: 5}, nil)
		users.On("GetByPhone", ctx, "555-0100").Return(nil, domain.ErrNotFound)
		refs.On("RoleByID", ctx, int64(1)).Return(customerRole, nil)
		users.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.PasswordHash == "old" && u.IsActive && u.FirstName == "Liv" && u.Role == nil
		})).Return(nil)
		users.On("ActivityCounts", ctx, []int64{5}).Return(map[int64]domain.UserActivity{}, nil)

		_, err := svc.UpdateUser(ctx, self, 5, update)
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("new password and deactivation", func(t *testing.T) {
		users := new(MockUserRepository)
		refs := new(MockReferenceRepository)
		svc := NewService(users, refs, fakeHasher{})

		users.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5, PasswordHash: "old", RoleID: 1, IsActive: true}, nil)
		users.On("GetByUsername", ctx, mock.Anything).Return(nil, domain.ErrNotFound)
		users.On("GetByEmail", ctx, mock.Anything).Return(nil, domain.ErrNotFound)
		users.On("GetByPhone", ctx, mock.Anything).Return(nil, domain.ErrNotFound)
		refs.On("RoleByID", ctx, int64(1)).Return(customerRole, nil)
		users.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.PasswordHash == "hashed:newpass" && !u.IsActive
		})).Return(nil)
		users.On("ActivityCounts", ctx, []int64{5}).Return(map[int64]domain.UserActivity{}, nil)

		req := update
		req.Password = "newpass"
		req.IsActive = ptr(false)
		_, err := svc.UpdateUser(ctx, self, 5, req)
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("deactivated user cannot reactivate themself", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, new(MockReferenceRepository), fakeHasher{})
		users.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5, RoleID: 1, IsActive: false}, nil)

		req := update
		req.IsActive = ptr(true)
		_, err := svc.UpdateUser(ctx, self, 5, req)
		assert.ErrorIs(t, err, ErrReactivateDenied)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("admin reactivates", func(t *testing.T) {
		users := new(MockUserRepository)
		refs := new(MockReferenceRepository)
		svc := NewService(users, refs, fakeHasher{})
		admin := &domain.Session{UserID: 1, Role: domain.RoleAdmin}

		users.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5, RoleID: 1, IsActive: false}, nil)
		users.On("GetByUsername", ctx, mock.Anything).Return(nil, domain.ErrNotFound)
		users.On("GetByEmail", ctx, mock.Anything).Return(nil, domain.ErrNotFound)
		users.On("GetByPhone", ctx, mock.Anything).Return(nil, domain.ErrNotFound)
		refs.On("RoleByID", ctx, int64(1)).Return(customerRole, nil)
		users.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool { return u.IsActive })).Return(nil)
		users.On("ActivityCounts", ctx, []int64{5}).Return(map[int64]domain.UserActivity{}, nil)

		req := update
		req.IsActive = ptr(true)
		_, err := svc.UpdateUser(ctx, admin, 5, req)
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("email owned by someone else", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, new(MockReferenceRepository), fakeHasher{})

		users.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5}, nil)
		users.On("GetByUsername", ctx, "olivia").Return(&domain.User{ID: 5}, nil)
		users.On("GetByEmail", ctx, "olivia@example.com").Return(&domain.User{ID: 6}, nil)

		_, err := svc.UpdateUser(ctx, self, 5, update)
		assert.ErrorIs(t, err, ErrEmailTaken)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, new(MockReferenceRepository), fakeHasher{})
		users.On("GetByID", ctx, int64(5)).Return(nil, domain.ErrNotFound)

		_, err := svc.UpdateUser(ctx, self, 5, update)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestService_DeleteUser(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockReferenceRepository), fakeHasher{})
	ctx := context.Background()

	users.On("DeleteCascade", ctx, int64(5)).Return(&repository.CascadeResult{Bookings: 3, Pets: 1}, nil).Once()
	users.On("DeleteCascade", ctx, int64(5)).Return(nil, domain.ErrNotFound)

	res, err := svc.DeleteUser(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Bookings)

	_, err = svc.DeleteUser(ctx, 5)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_GetUsers_FirstMatchingCriterion(t *testing.T) {
	ctx := context.Background()

	t.Run("email wins", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, new(MockReferenceRepository), fakeHasher{})
		users.On("Find", ctx, repository.UserFilter{EmailContains: "oli"}).Return([]domain.User{{ID: 1}}, nil)
		users.On("ActivityCounts", ctx, []int64{1}).Return(map[int64]domain.UserActivity{1: {OwnedPets: 2}}, nil)

		list, err := svc.GetUsers(ctx, Filter{Email: "oli", CustomerType: "SITTER"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, int64(2), list[0].Activity.OwnedPets)
	})

	t.Run("unknown customer type", func(t *testing.T) {
		refs := new(MockReferenceRepository)
		svc := NewService(new(MockUserRepository), refs, fakeHasher{})
		refs.On("CustomerTypeByName", ctx, "WALKER").Return(nil, domain.ErrNotFound)

		_, err := svc.GetUsers(ctx, Filter{CustomerType: "WALKER"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("by role", func(t *testing.T) {
		users := new(MockUserRepository)
		refs := new(MockReferenceRepository)
		svc := NewService(users, refs, fakeHasher{})
		refs.On("RoleByName", ctx, "admin").Return(adminRole, nil)
		users.On("Find", ctx, repository.UserFilter{Role: domain.RoleAdmin}).Return([]domain.User{}, nil)
		users.On("ActivityCounts", ctx, []int64{}).Return(map[int64]domain.UserActivity{}, nil)

		_, err := svc.GetUsers(ctx, Filter{Role: "admin"})
		require.NoError(t, err)
		users.AssertExpectations(t)
	})
}

func TestService_GetUserByEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockReferenceRepository), fakeHasher{})
	ctx := context.Background()

	users.On("GetByEmail", ctx, "sam@example.com").Return(&domain.User{ID: 3}, nil)
	users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)
	users.On("ActivityCounts", ctx, []int64{3}).Return(map[int64]domain.UserActivity{3: {SitterBookings: 4}}, nil)

	u, err := svc.GetUserByEmail(ctx, " SAM@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(4), u.Activity.SitterBookings)

	_, err = svc.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_GetActiveUsers(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockReferenceRepository), fakeHasher{})
	ctx := context.Background()
	active := true

	users.On("Find", ctx, repository.UserFilter{IsActive: &active}).Return([]domain.User{{ID: 1, IsActive: true}}, nil)
	users.On("ActivityCounts", ctx, []int64{1}).Return(map[int64]domain.UserActivity{}, nil)

	list, err := svc.GetActiveUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
