package notify

import (
	"context"
	"sync"
	"time"

	"flowermart-be/internal/logger"
	"flowermart-be/internal/metrics"

	"go.uber.org/zap"
)

// OrderData is the denormalized order view handed to every channel.
type OrderData struct {
	OrderID       int64
	TotalAmount   int64
	CreatedAt     time.Time
	CustomerName  string
	Phone         string
	Email         string
	Address       string
	ReceiverName  string
	ReceiverPhone string
	DeliveryTime  string
	Items         []Item
}

type Item struct {
	Name     string
	Quantity int
	Price    int64
}

// Channel is one delivery mechanism (email, chat push). Send is
// attempted exactly once per order; there is no retry or queue.
type Channel interface {
	Name() string
	Send(ctx context.Context, data OrderData) error
}

type Notifier interface {
	// Dispatch fans the order out to every channel without blocking.
	// The returned channel closes when all sends have finished; it
	// exists for tests and shutdown draining, never for control flow
	// on the response path.
	Dispatch(data OrderData) <-chan struct{}
}

type dispatcher struct {
	channels []Channel
	timeout  time.Duration
}

func NewDispatcher(channels ...Channel) Notifier {
	return &dispatcher{
		channels: channels,
		timeout:  30 * time.Second,
	}
}

func (d *dispatcher) Dispatch(data OrderData) <-chan struct{} {
	done := make(chan struct{})

	var wg sync.WaitGroup
	for _, ch := range d.channels {
		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()
			d.send(ch, data)
		}(ch)
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	return done
}

// send isolates one channel attempt: its error or panic never reaches
// the caller or the other channels.
func (d *dispatcher) send(ch Channel, data OrderData) {
	log := logger.L().With(
		zap.String("channel", ch.Name()),
		zap.Int64("order_id", data.OrderID),
	)

	defer func() {
		if r := recover(); r != nil {
			metrics.NotificationsFailed.Inc()
			log.Error("notification channel panicked", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	metrics.NotificationsAttempted.Inc()
	if err := ch.Send(ctx, data); err != nil {
		metrics.NotificationsFailed.Inc()
		log.Error("notification delivery failed", zap.Error(err))
		return
	}

	log.Info("notification delivered")
}
