package order

import "errors"

var (
	ErrInvalidItems  = errors.New("order requires items with positive quantity and non-negative price")
	ErrInvalidStatus = errors.New("unknown order status")
	ErrOrderNotFound = errors.New("order not found")
)
