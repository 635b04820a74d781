package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Items       []*CartItem     `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
}

// CartItem carries the unit price snapshotted at add time; it may diverge
// from the product's current price.
type CartItem struct {
	ID          int64           `json:"id"`
	CartID      int64           `json:"-"`
	UserID      int64           `json:"-"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

type AddToCartParams struct {
	UserID    int64
	ProductID int64
	Quantity  int
}

type UpdateItemParams struct {
	UserID   int64
	ItemID   int64
	Quantity int
}
