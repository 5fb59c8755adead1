package customers

import (
	"github.com/shopspring/decimal"
)

// RegisterCustomerRequest is the body of POST /api/customers.
type RegisterCustomerRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	Age           int    `json:"age" binding:"gte=0"`
	Address       string `json:"address"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"marital_status"`
}

// WalletRequest is the body of the charge-wallet and deduce-wallet endpoints.
type WalletRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
