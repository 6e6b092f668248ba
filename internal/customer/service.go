package customer

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"flowermart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	// Resolve returns the customer record backing an order. The
	// authenticated path never creates one; the guest path creates a
	// row on first order and reuses it by email afterwards.
	Resolve(ctx context.Context, identity Identity) (*Customer, error)

	List(ctx context.Context) ([]*Customer, error)
	Get(ctx context.Context, id int64) (*Customer, error)
	Update(ctx context.Context, id int64, c *Customer) error
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Resolve(ctx context.Context, identity Identity) (*Customer, error) {
	if identity.UserID != nil {
		return s.resolveAuthenticated(ctx, *identity.UserID)
	}
	return s.resolveGuest(ctx, identity.Guest)
}

func (s *service) resolveAuthenticated(ctx context.Context, userID int64) (*Customer, error) {
	log := logger.FromCtx(ctx).With(zap.Int64("user_id", userID))

	c, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, ErrCustomerNotFound) {
		// An account without a customer profile means registration
		// never provisioned one. Surface it, don't paper over it.
		log.Warn("authenticated user has no customer profile")
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		log.Error("customer lookup by user failed", zap.Error(err))
		return nil, err
	}

	return c, nil
}

func (s *service) resolveGuest(ctx context.Context, contact *Contact) (*Customer, error) {
	if contact == nil || !validEmail(contact.Email) {
		return nil, ErrInvalidGuestContact
	}

	email := strings.TrimSpace(contact.Email)
	log := logger.FromCtx(ctx).With(zap.String("email", email))

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		// Reuse as-is even when the submitted name or phone differ.
		return existing, nil
	}
	if !errors.Is(err, ErrCustomerNotFound) {
		log.Error("customer lookup by email failed", zap.Error(err))
		return nil, err
	}

	c := &Customer{
		Name:    contact.FullName,
		Email:   email,
		Phone:   contact.Phone,
		Address: contact.Address,
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id

	log.Info("guest customer created", zap.Int64("customer_id", id))
	return c, nil
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func (s *service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id int64, c *Customer) error {
	return s.repo.Update(ctx, id, c)
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.GetStats(ctx)
}
