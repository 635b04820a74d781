package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInvalidStock      = errors.New("stock quantity must not be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
)
