package domain

import "github.com/shopspring/decimal"

func init() {
	// Clients read prices and balances as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseAmount parses a positive monetary amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, InvalidInput("amount %q is not a number", raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, InvalidInput("amount must be positive")
	}
	return amount, nil
}
