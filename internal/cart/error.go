package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrProductInactive   = errors.New("product is not available")
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Resource State --
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNotOwner         = errors.New("cart item does not belong to this user")
)
