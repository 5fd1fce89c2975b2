package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is a non-negative monetary counter owned by a volunteer or a user wallet.
type Balance struct {
	OwnerID   int64
	Amount    decimal.Decimal
	UpdatedAt time.Time
}

// Covers reports whether the balance can pay out amount.
func (b Balance) Covers(amount decimal.Decimal) bool {
	return b.Amount.GreaterThanOrEqual(amount)
}
