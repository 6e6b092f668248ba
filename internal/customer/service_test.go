package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByUserID(ctx context.Context, userID int64) (*Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, c *Customer) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context) ([]*Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Customer), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Customer), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, c *Customer) error {
	args := m.Called(ctx, id, c)
	return args.Error(0)
}

func (m *MockRepository) GetStats(ctx context.Context) (*Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stats), args.Error(1)
}

// --- Tests ---

func TestResolve_Authenticated(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		uid := int64(7)
		repo.On("FindByUserID", ctx, uid).Return(&Customer{ID: 3, UserID: &uid, Name: "Lan Pham"}, nil)

		c, err := svc.Resolve(ctx, Authenticated(uid))
		require.NoError(t, err)
		assert.Equal(t, int64(3), c.ID)
		repo.AssertExpectations(t)
	})

	t.Run("NoProfile", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByUserID", ctx, int64(99)).Return(nil, ErrCustomerNotFound)

		_, err := svc.Resolve(ctx, Authenticated(99))
		assert.ErrorIs(t, err, ErrCustomerNotFound)

		// Must not fall back to creating a customer row.
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DBError", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByUserID", ctx, int64(7)).Return(nil, errors.New("db down"))

		_, err := svc.Resolve(ctx, Authenticated(7))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrCustomerNotFound)
	})
}

func TestResolve_Guest(t *testing.T) {
	ctx := context.Background()
	contact := Contact{
		FullName: "Guest Nguyen",
		Email:    "guest@example.com",
		Phone:    "0901234567",
		Address:  "12 Nguyen Trai",
	}

	t.Run("ReusesExistingByEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		stored := &Customer{ID: 11, Name: "Old Name", Email: contact.Email, Phone: "000"}
		repo.On("FindByEmail", ctx, contact.Email).Return(stored, nil)

		c, err := svc.Resolve(ctx, AsGuest(contact))
		require.NoError(t, err)
		assert.Equal(t, int64(11), c.ID)
		// No update-on-reorder: stored fields win over submitted ones.
		assert.Equal(t, "Old Name", c.Name)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("CreatesWhenMissing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, contact.Email).Return(nil, ErrCustomerNotFound)
		repo.On("Create", ctx, mock.MatchedBy(func(c *Customer) bool {
			return c.Email == contact.Email && c.Name == contact.FullName && c.UserID == nil
		})).Return(int64(42), nil)

		c, err := svc.Resolve(ctx, AsGuest(contact))
		require.NoError(t, err)
		assert.Equal(t, int64(42), c.ID)
		repo.AssertExpectations(t)
	})

	t.Run("SameEmailResolvesToSameCustomer", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("FindByEmail", ctx, contact.Email).Return(nil, ErrCustomerNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(int64(42), nil).Once()

		first, err := svc.Resolve(ctx, AsGuest(contact))
		require.NoError(t, err)

		repo.On("FindByEmail", ctx, contact.Email).
			Return(&Customer{ID: 42, Email: contact.Email}, nil).Once()

		second, err := svc.Resolve(ctx, AsGuest(contact))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		bad := contact
		bad.Email = ""
		_, err := svc.Resolve(ctx, AsGuest(bad))
		assert.ErrorIs(t, err, ErrInvalidGuestContact)
	})

	t.Run("MalformedEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		bad := contact
		bad.Email = "not-an-email"
		_, err := svc.Resolve(ctx, AsGuest(bad))
		assert.ErrorIs(t, err, ErrInvalidGuestContact)
	})

	t.Run("NilContact", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Resolve(ctx, Identity{})
		assert.ErrorIs(t, err, ErrInvalidGuestContact)
	})
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("a@b.vn"))
	assert.True(t, validEmail("  lan@example.com "))
	assert.False(t, validEmail(""))
	assert.False(t, validEmail("   "))
	assert.False(t, validEmail("missing-at.example.com"))
}
