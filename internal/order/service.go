package order

import (
	"context"
	"errors"

	"flowermart-be/internal/customer"
	"flowermart-be/internal/logger"
	"flowermart-be/internal/metrics"
	"flowermart-be/internal/notify"

	"go.uber.org/zap"
)

type Service interface {
	// Create places an order for the resolved customer and returns the
	// persisted order. Notifications are fired after commit and never
	// affect the result.
	Create(ctx context.Context, identity customer.Identity, input CreateInput) (*Order, error)

	ListForUser(ctx context.Context, userID int64) ([]*Summary, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*Summary, error)
	ListAll(ctx context.Context) ([]*Summary, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) error
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo      Repository
	customers customer.Service
	notifier  notify.Notifier
}

func NewService(repo Repository, customers customer.Service, notifier notify.Notifier) Service {
	return &service{
		repo:      repo,
		customers: customers,
		notifier:  notifier,
	}
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return ErrInvalidItems
	}
	for _, it := range items {
		if it.Quantity <= 0 || it.Price < 0 {
			return ErrInvalidItems
		}
	}
	return nil
}

// computeTotal sums price*quantity in integer VND.
func computeTotal(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

func (s *service) Create(ctx context.Context, identity customer.Identity, input CreateInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Int("item_count", len(input.Items)),
	)
	timer := metrics.StartTimer()

	// All-or-nothing at the validation stage: one bad line rejects the
	// whole order before anything is resolved or written.
	if err := validateItems(input.Items); err != nil {
		log.Warn("order rejected by validation", zap.Error(err))
		return nil, err
	}

	cust, err := s.customers.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	o := &Order{
		CustomerID:      cust.ID,
		Total:           computeTotal(input.Items),
		Status:          StatusPending,
		ReceiverName:    input.ReceiverName,
		ReceiverPhone:   input.ReceiverPhone,
		DeliveryTime:    input.DeliveryTime,
		ShippingAddress: input.ShippingAddress,
	}
	if o.ReceiverName == "" {
		o.ReceiverName = cust.Name
	}
	if o.ReceiverPhone == "" {
		o.ReceiverPhone = cust.Phone
	}

	orderID, err := s.repo.CreateOrderTx(ctx, o, input.Items)
	if err != nil {
		log.Error("order persistence failed", zap.Error(err))
		return nil, err
	}
	o.ID = orderID

	metrics.OrdersCreated.Inc()
	log.Info("order created",
		zap.Int64("order_id", orderID),
		zap.Int64("customer_id", cust.ID),
		zap.Int64("total", o.Total),
		zap.Duration("duration", timer.Duration()),
	)

	// The order is durable from here on. A failed view fetch only
	// costs the notifications, never the response.
	view, err := s.repo.GetView(ctx, orderID)
	if err != nil {
		log.Error("order view fetch failed, skipping notifications",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
		return o, nil
	}

	s.notifier.Dispatch(view.toOrderData())

	return o, nil
}

// ListForUser returns the authenticated user's orders. A user without
// a customer profile simply has no orders.
func (s *service) ListForUser(ctx context.Context, userID int64) ([]*Summary, error) {
	cust, err := s.customers.Resolve(ctx, customer.Authenticated(userID))
	if errors.Is(err, customer.ErrCustomerNotFound) {
		return []*Summary{}, nil
	}
	if err != nil {
		return nil, err
	}

	return s.repo.ListByCustomer(ctx, cust.ID)
}

func (s *service) ListByCustomer(ctx context.Context, customerID int64) ([]*Summary, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) ListAll(ctx context.Context) ([]*Summary, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatus overwrites the status unconditionally; only enum
// membership is checked, not the transition.
func (s *service) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	parsed, ok := ParseStatus(status)
	if !ok {
		return ErrInvalidStatus
	}

	return s.repo.UpdateStatus(ctx, orderID, parsed)
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.GetStats(ctx)
}
