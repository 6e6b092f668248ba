package user

import (
	"context"
	"errors"
	"testing"

	"flowermart-be/internal/customer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, username, hashedPassword string, role Role) (*User, error) {
	args := m.Called(ctx, username, hashedPassword, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) FindByUserID(ctx context.Context, userID int64) (*customer.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *customer.Customer) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepo) GetAll(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Update(ctx context.Context, id int64, c *customer.Customer) error {
	args := m.Called(ctx, id, c)
	return args.Error(0)
}

func (m *MockCustomerRepo) GetStats(ctx context.Context) (*customer.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Stats), args.Error(1)
}

// --- Tests ---

var registerInput = RegisterInput{
	Username: "lan.pham",
	Password: "secret123",
	Name:     "Lan Pham",
	Email:    "lan@example.com",
	Phone:    "0901234567",
	Address:  "12 Nguyen Trai",
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		customers := new(MockCustomerRepo)
		svc := NewService(users, customers)

		users.On("FindByUsername", ctx, "lan.pham").Return(nil, ErrUserNotFound)
		customers.On("FindByEmail", ctx, "lan@example.com").Return(nil, customer.ErrCustomerNotFound)
		users.On("Create", ctx, "lan.pham", mock.AnythingOfType("string"), RoleUser).
			Return(&User{ID: 9, Username: "lan.pham", Role: RoleUser}, nil)
		customers.On("Create", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			return c.UserID != nil && *c.UserID == 9 && c.Email == "lan@example.com"
		})).Return(int64(3), nil)

		err := svc.Register(ctx, registerInput)
		assert.NoError(t, err)
		users.AssertExpectations(t)
		customers.AssertExpectations(t)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		users := new(MockUserRepo)
		customers := new(MockCustomerRepo)
		svc := NewService(users, customers)

		users.On("FindByUsername", ctx, "lan.pham").Return(&User{ID: 1}, nil)

		err := svc.Register(ctx, registerInput)
		assert.ErrorIs(t, err, ErrUsernameExists)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		users := new(MockUserRepo)
		customers := new(MockCustomerRepo)
		svc := NewService(users, customers)

		users.On("FindByUsername", ctx, "lan.pham").Return(nil, ErrUserNotFound)
		customers.On("FindByEmail", ctx, "lan@example.com").Return(&customer.Customer{ID: 2}, nil)

		err := svc.Register(ctx, registerInput)
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "unit-test-secret")

	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		customers := new(MockCustomerRepo)
		svc := NewService(users, customers)

		users.On("FindByUsername", ctx, "lan.pham").
			Return(&User{ID: 9, Username: "lan.pham", Password: hash, Role: RoleUser}, nil)
		customers.On("FindByUserID", ctx, int64(9)).
			Return(&customer.Customer{ID: 3, Name: "Lan Pham"}, nil)

		token, u, profile, err := svc.Login(ctx, "lan.pham", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(9), u.ID)
		require.NotNil(t, profile)
		assert.Equal(t, int64(3), profile.ID)

		claims, err := ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, "lan.pham", claims.Username)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("AdminSkipsProfileLookup", func(t *testing.T) {
		users := new(MockUserRepo)
		customers := new(MockCustomerRepo)
		svc := NewService(users, customers)

		users.On("FindByUsername", ctx, "quan.tri").
			Return(&User{ID: 1, Username: "quan.tri", Password: hash, Role: RoleAdmin}, nil)

		_, _, profile, err := svc.Login(ctx, "quan.tri", "secret123")
		require.NoError(t, err)
		assert.Nil(t, profile)
		customers.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		users := new(MockUserRepo)
		customers := new(MockCustomerRepo)
		svc := NewService(users, customers)

		users.On("FindByUsername", ctx, "ghost").Return(nil, ErrUserNotFound)

		_, _, _, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		customers := new(MockCustomerRepo)
		svc := NewService(users, customers)

		users.On("FindByUsername", ctx, "lan.pham").
			Return(&User{ID: 9, Password: hash, Role: RoleUser}, nil)

		_, _, _, err := svc.Login(ctx, "lan.pham", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("ProfileMissingIsNotFatal", func(t *testing.T) {
		users := new(MockUserRepo)
		customers := new(MockCustomerRepo)
		svc := NewService(users, customers)

		users.On("FindByUsername", ctx, "lan.pham").
			Return(&User{ID: 9, Username: "lan.pham", Password: hash, Role: RoleUser}, nil)
		customers.On("FindByUserID", ctx, int64(9)).
			Return(nil, customer.ErrCustomerNotFound)

		token, _, profile, err := svc.Login(ctx, "lan.pham", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Nil(t, profile)
	})

	t.Run("ByErrorOnProfileLookup", func(t *testing.T) {
		users := new(MockUserRepo)
		customers := new(MockCustomerRepo)
		svc := NewService(users, customers)

		users.On("FindByUsername", ctx, "lan.pham").
			Return(&User{ID: 9, Username: "lan.pham", Password: hash, Role: RoleUser}, nil)
		customers.On("FindByUserID", ctx, int64(9)).
			Return(nil, errors.New("db down"))

		_, _, _, err := svc.Login(ctx, "lan.pham", "secret123")
		assert.Error(t, err)
	})
}
