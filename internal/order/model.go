package order

import (
	"time"

	"flowermart-be/internal/notify"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus accepts only members of the fixed enum. Transitions
// between members are deliberately unvalidated.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// Money is integer VND end to end; no floats in this package.
type Order struct {
	ID              int64     `json:"order_id"`
	CustomerID      int64     `json:"customer_id"`
	Total           int64     `json:"total"`
	Status          Status    `json:"status"`
	ReceiverName    string    `json:"receiver_name"`
	ReceiverPhone   string    `json:"receiver_phone"`
	DeliveryTime    string    `json:"delivery_time"`
	ShippingAddress string    `json:"shipping_address"`
	OrderDate       time.Time `json:"order_date"`
}

type Item struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

// CreateInput is the checkout request body after JSON decoding.
type CreateInput struct {
	Items           []Item `json:"items"`
	ShippingAddress string `json:"shipping_address"`
	ReceiverName    string `json:"receiver_name"`
	ReceiverPhone   string `json:"receiver_phone"`
	DeliveryTime    string `json:"delivery_time"`
}

// Summary is one row in the order listings: the order plus customer
// identification and a short items description.
type Summary struct {
	Order
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Items         string `json:"items"`
}

// View is the denormalized order used to build notifications.
type View struct {
	Order
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Items         []ViewItem
}

type ViewItem struct {
	ProductName string
	Quantity    int
	Price       int64
}

type PeriodStats struct {
	Revenue int64 `json:"revenue"`
	Count   int64 `json:"count"`
}

type Stats struct {
	TotalOrders int64       `json:"total_orders"`
	Today       PeriodStats `json:"today"`
	Month       PeriodStats `json:"month"`
}

func (v *View) toOrderData() notify.OrderData {
	items := make([]notify.Item, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, notify.Item{
			Name:     it.ProductName,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	return notify.OrderData{
		OrderID:       v.ID,
		TotalAmount:   v.Total,
		CreatedAt:     v.OrderDate,
		CustomerName:  v.CustomerName,
		Phone:         v.CustomerPhone,
		Email:         v.CustomerEmail,
		Address:       v.ShippingAddress,
		ReceiverName:  v.ReceiverName,
		ReceiverPhone: v.ReceiverPhone,
		DeliveryTime:  v.DeliveryTime,
		Items:         items,
	}
}
