package order

import (
	"context"
	"database/sql"

	"flowermart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx persists the order header, its line items, and the
	// clamped stock decrements in one transaction. Either everything
	// lands or nothing does.
	CreateOrderTx(ctx context.Context, o *Order, items []Item) (int64, error)

	GetView(ctx context.Context, orderID int64) (*View, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*Summary, error)
	ListAll(ctx context.Context) ([]*Summary, error)
	UpdateStatus(ctx context.Context, orderID int64, status Status) error
	GetStats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order, items []Item) (int64, error) {
	log := logger.FromCtx(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			customer_id, total, status,
			receiver_name, receiver_phone, delivery_time, shipping_address
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING order_id
	`,
		o.CustomerID,
		o.Total,
		o.Status,
		o.ReceiverName,
		o.ReceiverPhone,
		o.DeliveryTime,
		o.ShippingAddress,
	).Scan(&orderID)
	if err != nil {
		log.Error("failed to insert order header", zap.Error(err))
		return 0, err
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
		`, orderID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)
			return 0, err
		}

		// Atomic clamped decrement: stock never goes negative, but an
		// order for more than the remaining stock still succeeds.
		_, err = tx.ExecContext(ctx, `
			UPDATE products
			SET stock = GREATEST(stock - $1, 0)
			WHERE product_id = $2
		`, item.Quantity, item.ProductID)
		if err != nil {
			log.Error("failed to decrement stock",
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return orderID, nil
}

func (r *repository) GetView(ctx context.Context, orderID int64) (*View, error) {
	var v View
	err := r.db.QueryRowContext(ctx, `
		SELECT o.order_id, o.customer_id, o.total, o.status,
			o.receiver_name, o.receiver_phone, o.delivery_time, o.shipping_address, o.order_date,
			c.name, c.email, c.phone
		FROM orders o
		JOIN customers c ON o.customer_id = c.customer_id
		WHERE o.order_id = $1
	`, orderID).Scan(
		&v.ID, &v.CustomerID, &v.Total, &v.Status,
		&v.ReceiverName, &v.ReceiverPhone, &v.DeliveryTime, &v.ShippingAddress, &v.OrderDate,
		&v.CustomerName, &v.CustomerEmail, &v.CustomerPhone,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON oi.product_id = p.product_id
		WHERE oi.order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it ViewItem
		if err := rows.Scan(&it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		v.Items = append(v.Items, it)
	}

	return &v, rows.Err()
}

const summarySelect = `
	SELECT o.order_id, o.customer_id, o.total, o.status,
		o.receiver_name, o.receiver_phone, o.delivery_time, o.shipping_address, o.order_date,
		COALESCE(c.name, ''), COALESCE(c.email, ''),
		COALESCE(string_agg(p.name || ' (x' || oi.quantity || ')', ', '), '')
	FROM orders o
	LEFT JOIN customers c ON o.customer_id = c.customer_id
	LEFT JOIN order_items oi ON o.order_id = oi.order_id
	LEFT JOIN products p ON oi.product_id = p.product_id
`

const summaryGroup = `
	GROUP BY o.order_id, c.name, c.email
	ORDER BY o.order_date DESC
`

func (r *repository) querySummaries(ctx context.Context, query string, args ...interface{}) ([]*Summary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("order listing query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	summaries := []*Summary{}
	for rows.Next() {
		var s Summary
		err := rows.Scan(
			&s.ID, &s.CustomerID, &s.Total, &s.Status,
			&s.ReceiverName, &s.ReceiverPhone, &s.DeliveryTime, &s.ShippingAddress, &s.OrderDate,
			&s.CustomerName, &s.CustomerEmail, &s.Items,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}

func (r *repository) ListByCustomer(ctx context.Context, customerID int64) ([]*Summary, error) {
	return r.querySummaries(ctx, summarySelect+` WHERE o.customer_id = $1 `+summaryGroup, customerID)
}

func (r *repository) ListAll(ctx context.Context) ([]*Summary, error) {
	return r.querySummaries(ctx, summarySelect+summaryGroup)
}

func (r *repository) UpdateStatus(ctx context.Context, orderID int64, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE order_id = $2
	`, status, orderID)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *repository) GetStats(ctx context.Context) (*Stats, error) {
	var s Stats

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(total) FILTER (WHERE order_date::date = CURRENT_DATE), 0),
			COUNT(*) FILTER (WHERE order_date::date = CURRENT_DATE),
			COALESCE(SUM(total) FILTER (WHERE date_trunc('month', order_date) = date_trunc('month', now())), 0),
			COUNT(*) FILTER (WHERE date_trunc('month', order_date) = date_trunc('month', now()))
		FROM orders
	`).Scan(
		&s.TotalOrders,
		&s.Today.Revenue, &s.Today.Count,
		&s.Month.Revenue, &s.Month.Count,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
