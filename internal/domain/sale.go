package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is an append-only ledger entry: one unit of one item sold to one
// customer. Customer and item are referenced by id only.
type SaleRecord struct {
	ID          int64           `json:"sale_id" db:"sale_id"`
	CustomerID  int64           `json:"customer_id" db:"customer_id"`
	ItemID      int64           `json:"item_id" db:"item_id"`
	PriceAtSale decimal.Decimal `json:"price_at_sale" db:"price_at_sale"`
	SaleDate    time.Time       `json:"sale_date" db:"sale_date"`
}

// NewSaleRecord builds an unsaved sale of item to customer at the item's
// current price. ID and SaleDate are assigned by the database on insert.
func NewSaleRecord(customer *Customer, item *Item) *SaleRecord {
	return &SaleRecord{
		CustomerID:  customer.ID,
		ItemID:      item.ID,
		PriceAtSale: item.PricePerItem,
	}
}

// SaleSummary is one row of a customer's sales history. PricePerItem is the
// item's price at query time; PriceAtSale is what was charged.
type SaleSummary struct {
	SaleID       int64           `json:"sale_id"`
	SaleDate     time.Time       `json:"sale_date"`
	ItemName     string          `json:"item_name"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	PriceAtSale  decimal.Decimal `json:"price_at_sale"`
}
