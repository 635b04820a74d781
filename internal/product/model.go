package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	Active        bool            `json:"active"`
	CategoryID    int64           `json:"categoryId"`
	CategoryName  string          `json:"categoryName"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type ProductParams struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	ImageURL      *string
	Active        *bool
	CategoryID    int64
}

// ListFilter narrows product listings. The zero value lists everything.
type ListFilter struct {
	OnlyActive bool
	CategoryID *int64
	Keyword    *string
}
