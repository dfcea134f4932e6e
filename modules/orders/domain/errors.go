package domain

import "errors"

// Domain errors for the orders bounded context.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidOrderID    = errors.New("invalid order ID")
	ErrNoItems           = errors.New("order has no items")
	ErrProductNotFound   = errors.New("product not found")
	ErrProductNotForSale = errors.New("product is not for sale")
	ErrTotalMismatch     = errors.New("order total does not match item prices")
	ErrInvalidBuyer      = errors.New("invalid buyer data")
)
