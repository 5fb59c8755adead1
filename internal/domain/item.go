package domain

import (
	"github.com/shopspring/decimal"
)

// Category is one of the fixed inventory categories.
type Category string

const (
	CategoryFood        Category = "food"
	CategoryClothes     Category = "clothes"
	CategoryAccessories Category = "accessories"
	CategoryElectronics Category = "electronics"
)

// Categories lists every accepted category in display order.
var Categories = []Category{CategoryFood, CategoryClothes, CategoryAccessories, CategoryElectronics}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Item is a stocked inventory entry.
type Item struct {
	ID           int64           `json:"item_id" db:"item_id"`
	Name         string          `json:"name" db:"name"`
	Category     Category        `json:"category" db:"category"`
	PricePerItem decimal.Decimal `json:"price_per_item" db:"price_per_item"`
	Description  string          `json:"description" db:"description"`
	CountInStock int             `json:"count_in_stock" db:"count_in_stock"`
}

// InStock reports whether at least one unit is available.
func (i *Item) InStock() bool {
	return i.CountInStock > 0
}

// ItemUpdate holds the item fields a caller may change. Nil fields are left
// untouched.
type ItemUpdate struct {
	Name         *string          `json:"name"`
	Category     *Category        `json:"category"`
	PricePerItem *decimal.Decimal `json:"price_per_item"`
	Description  *string          `json:"description"`
	CountInStock *int             `json:"count_in_stock"`
}

// Empty reports whether no field is set.
func (u ItemUpdate) Empty() bool {
	return u.Name == nil && u.Category == nil && u.PricePerItem == nil &&
		u.Description == nil && u.CountInStock == nil
}

// Validate checks the values that are set.
func (u ItemUpdate) Validate() error {
	if u.Category != nil && !u.Category.Valid() {
		return InvalidInput("unknown category %q", *u.Category)
	}
	if u.PricePerItem != nil && !u.PricePerItem.IsPositive() {
		return InvalidInput("price_per_item must be positive")
	}
	if u.CountInStock != nil && *u.CountInStock < 0 {
		return InvalidInput("count_in_stock must not be negative")
	}
	if u.Name != nil && *u.Name == "" {
		return InvalidInput("name must not be empty")
	}
	return nil
}
