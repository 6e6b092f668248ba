package customer

import "errors"

var (
	ErrCustomerNotFound    = errors.New("customer profile not found")
	ErrInvalidGuestContact = errors.New("guest contact requires a valid email")
)
