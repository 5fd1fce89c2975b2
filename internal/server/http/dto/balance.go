package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/sanda/internal/domain/model"
)

// AmountRequest carries a deposit, withdrawal or can-withdraw amount.
type AmountRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// BalanceResponse represents a volunteer balance or a wallet.
type BalanceResponse struct {
	OwnerID   int64           `json:"owner_id"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CanWithdrawResponse answers a can-withdraw query.
type CanWithdrawResponse struct {
	CanWithdraw bool `json:"can_withdraw"`
}

func NewBalanceResponse(b model.Balance) BalanceResponse {
	return BalanceResponse{OwnerID: b.OwnerID, Amount: b.Amount, UpdatedAt: b.UpdatedAt}
}
