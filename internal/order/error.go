package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotOwner          = errors.New("order does not belong to this user")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrShippingRequired  = errors.New("shipping address is required")
	ErrInsufficientStock = errors.New("insufficient stock for product")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrAlreadyCancelled  = errors.New("order is already cancelled")
	ErrNotCancellable    = errors.New("cannot cancel order that is already shipped or delivered")
	ErrUseCancelFlow     = errors.New("orders are cancelled via the cancel endpoint")
)
