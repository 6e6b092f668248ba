package product

import (
	"context"
	"database/sql"

	"flowermart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetAll(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetFeatured(ctx context.Context, limit int) ([]*Product, error)
	Create(ctx context.Context, p *Product) (int64, error)
	Update(ctx context.Context, id int64, p *Product) error
	Delete(ctx context.Context, id int64) error
	GetStats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productSelect = `
	SELECT
		p.product_id, p.name, p.price, p.stock,
		p.category_id, p.supplier_id, p.description, p.image_url, p.created_at,
		c.name AS category_name, s.name AS supplier_name
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.category_id
	LEFT JOIN suppliers s ON p.supplier_id = s.supplier_id
`

func scanProduct(rows *sql.Rows) (*Product, error) {
	var p Product
	err := rows.Scan(
		&p.ID, &p.Name, &p.Price, &p.Stock,
		&p.CategoryID, &p.SupplierID, &p.Description, &p.ImageURL, &p.CreatedAt,
		&p.CategoryName, &p.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("product query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetAll(ctx context.Context) ([]*Product, error) {
	return r.queryProducts(ctx, productSelect+` ORDER BY p.created_at DESC`)
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	products, err := r.queryProducts(ctx, productSelect+` WHERE p.product_id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}
	return products[0], nil
}

func (r *repository) GetFeatured(ctx context.Context, limit int) ([]*Product, error) {
	return r.queryProducts(ctx, productSelect+`
		WHERE p.stock > 0
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)
}

func (r *repository) Create(ctx context.Context, p *Product) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, category_id, supplier_id, stock, description, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING product_id
	`, p.Name, p.Price, p.CategoryID, p.SupplierID, p.Stock, p.Description, p.ImageURL).Scan(&id)

	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, price = $2, category_id = $3, supplier_id = $4,
			stock = $5, description = $6, image_url = $7
		WHERE product_id = $8
	`, p.Name, p.Price, p.CategoryID, p.SupplierID, p.Stock, p.Description, p.ImageURL, id)

	return err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM products
		WHERE product_id = $1
	`, id)

	return err
}

func (r *repository) GetStats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE stock = 0)
		FROM products
	`).Scan(&s.TotalProducts, &s.OutOfStock)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
