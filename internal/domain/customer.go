package domain

import (
	"github.com/shopspring/decimal"
)

// Customer is a registered shopper with a wallet.
type Customer struct {
	ID            int64           `json:"customer_id" db:"customer_id"`
	FullName      string          `json:"full_name" db:"full_name"`
	Username      string          `json:"username" db:"username"`
	PasswordHash  string          `json:"-" db:"password_hash"`
	Age           int             `json:"age" db:"age"`
	Address       string          `json:"address" db:"address"`
	Gender        string          `json:"gender" db:"gender"`
	MaritalStatus string          `json:"marital_status" db:"marital_status"`
	WalletBalance decimal.Decimal `json:"wallet_balance" db:"wallet_balance"`
}

// CanAfford reports whether the wallet covers price.
func (c *Customer) CanAfford(price decimal.Decimal) bool {
	return c.WalletBalance.GreaterThanOrEqual(price)
}

// CustomerUpdate holds the profile fields a caller may change. Nil fields are
// left untouched.
type CustomerUpdate struct {
	FullName      *string `json:"full_name"`
	Username      *string `json:"username"`
	Password      *string `json:"password"`
	Age           *int    `json:"age"`
	Address       *string `json:"address"`
	Gender        *string `json:"gender"`
	MaritalStatus *string `json:"marital_status"`
}

// Empty reports whether no field is set.
func (u CustomerUpdate) Empty() bool {
	return u.FullName == nil && u.Username == nil && u.Password == nil && u.Age == nil &&
		u.Address == nil && u.Gender == nil && u.MaritalStatus == nil
}
