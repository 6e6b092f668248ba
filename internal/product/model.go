package product

import "time"

// Price is integer VND; the currency has no minor unit.
type Product struct {
	ID          int64     `json:"product_id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	CategoryID  *int64    `json:"category_id"`
	SupplierID  *int64    `json:"supplier_id"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined for read endpoints, not stored on products.
	CategoryName *string `json:"category_name,omitempty"`
	SupplierName *string `json:"supplier_name,omitempty"`
}

type Stats struct {
	TotalProducts int64 `json:"total_products"`
	OutOfStock    int64 `json:"out_of_stock"`
}
