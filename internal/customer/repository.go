package customer

import (
	"context"
	"database/sql"

	"flowermart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	FindByUserID(ctx context.Context, userID int64) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Create(ctx context.Context, c *Customer) (int64, error)
	GetAll(ctx context.Context) ([]*Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
	Update(ctx context.Context, id int64, c *Customer) error
	GetStats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const customerColumns = `customer_id, user_id, name, email, phone, address`

func scanCustomer(row *sql.Row) (*Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address)
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID int64) (*Customer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE user_id = $1
	`, userID)

	return scanCustomer(row)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE email = $1
	`, email)

	return scanCustomer(row)
}

func (r *repository) Create(ctx context.Context, c *Customer) (int64, error) {
	log := logger.FromCtx(ctx)

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (user_id, name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING customer_id
	`, c.UserID, c.Name, c.Email, c.Phone, c.Address).Scan(&id)
	if err != nil {
		log.Error("failed to insert customer", zap.String("email", c.Email), zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (r *repository) GetAll(ctx context.Context) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}

	return customers, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE customer_id = $1
	`, id)

	return scanCustomer(row)
}

func (r *repository) Update(ctx context.Context, id int64, c *Customer) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, address = $4
		WHERE customer_id = $5
	`, c.Name, c.Email, c.Phone, c.Address, id)

	return err
}

func (r *repository) GetStats(ctx context.Context) (*Stats, error) {
	var s Stats

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE date_trunc('month', created_at) = date_trunc('month', now()))
		FROM customers
	`).Scan(&s.TotalCustomers, &s.NewThisMonth)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
