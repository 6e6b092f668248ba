package user

import (
	"context"
	"errors"

	"flowermart-be/internal/customer"
	"flowermart-be/internal/logger"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) error
	Login(ctx context.Context, username, password string) (string, *User, *customer.Customer, error)
}

type service struct {
	repo      Repository
	customers customer.Repository
}

func NewService(repo Repository, customers customer.Repository) Service {
	return &service{repo: repo, customers: customers}
}

// Register creates the account row and its paired customer profile.
// Every authenticated account must end up with a customer row; the
// order path treats a missing profile as a provisioning bug.
func (s *service) Register(ctx context.Context, input RegisterInput) error {
	log := logger.FromCtx(ctx).With(zap.String("username", input.Username))

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return ErrUsernameExists
	} else if !errors.Is(err, ErrUserNotFound) {
		log.Error("username lookup failed", zap.Error(err))
		return err
	}

	if _, err := s.customers.FindByEmail(ctx, input.Email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, customer.ErrCustomerNotFound) {
		log.Error("email lookup failed", zap.Error(err))
		return err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return err
	}

	u, err := s.repo.Create(ctx, input.Username, hashed, RoleUser)
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return err
	}

	_, err = s.customers.Create(ctx, &customer.Customer{
		UserID:  &u.ID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	})
	if err != nil {
		log.Error("failed to create customer profile",
			zap.Int64("user_id", u.ID),
			zap.Error(err),
		)
		return err
	}

	log.Info("user registered", zap.Int64("user_id", u.ID))
	return nil
}

func (s *service) Login(ctx context.Context, username, password string) (string, *User, *customer.Customer, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", nil, nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Username)
	if err != nil {
		return "", nil, nil, err
	}

	var profile *customer.Customer
	if u.Role == RoleUser {
		profile, err = s.customers.FindByUserID(ctx, u.ID)
		if err != nil && !errors.Is(err, customer.ErrCustomerNotFound) {
			return "", nil, nil, err
		}
	}

	return token, u, profile, nil
}
