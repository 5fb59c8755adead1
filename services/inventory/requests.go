package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/MariamAbbas03/Project435/internal/domain"
)

// AddItemRequest is the body of POST /api/inventory.
type AddItemRequest struct {
	Name         string          `json:"name" binding:"required"`
	Category     domain.Category `json:"category" binding:"required,category"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	Description  string          `json:"description"`
	CountInStock int             `json:"count_in_stock" binding:"gte=0"`
}

// DeductStockRequest is the body of PUT /api/inventory/deduce-stock/:item_id.
type DeductStockRequest struct {
	Quantity int `json:"quantity"`
}
