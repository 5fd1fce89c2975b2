package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/sanda/internal/server/http/dto"
)

// BalanceHandler exposes one ledger, volunteer balances or wallets, over HTTP.
type BalanceHandler struct {
	ledger Ledger
}

// NewBalanceHandler constructs BalanceHandler.
func NewBalanceHandler(ledger Ledger) *BalanceHandler {
	return &BalanceHandler{ledger: ledger}
}

// Balance handles GET .../:id/balance.
func (h *BalanceHandler) Balance(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	b, err := h.ledger.Balance(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "balance", dto.NewBalanceResponse(*b))
}

// Deposit handles POST .../:id/deposit.
func (h *BalanceHandler) Deposit(c *gin.Context) {
	id, amount, valid := h.bindAmount(c)
	if !valid {
		return
	}
	b, err := h.ledger.Deposit(c.Request.Context(), id, amount)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "deposit applied", dto.NewBalanceResponse(*b))
}

// Withdraw handles POST .../:id/withdraw.
func (h *BalanceHandler) Withdraw(c *gin.Context) {
	id, amount, valid := h.bindAmount(c)
	if !valid {
		return
	}
	b, err := h.ledger.Withdraw(c.Request.Context(), id, amount)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "withdrawal applied", dto.NewBalanceResponse(*b))
}

// CanWithdraw handles POST .../:id/can-withdraw.
func (h *BalanceHandler) CanWithdraw(c *gin.Context) {
	id, amount, valid := h.bindAmount(c)
	if !valid {
		return
	}
	allowed, err := h.ledger.CanWithdraw(c.Request.Context(), id, amount)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "can withdraw", dto.CanWithdrawResponse{CanWithdraw: allowed})
}

func (h *BalanceHandler) bindAmount(c *gin.Context) (int64, decimal.Decimal, bool) {
	id, valid := pathID(c, "id")
	if !valid {
		return 0, decimal.Zero, false
	}
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Amount == nil {
		badRequest(c, "amount is required")
		return 0, decimal.Zero, false
	}
	return id, *req.Amount, true
}

// WalletHandler adds wallet opening to the ledger endpoints.
type WalletHandler struct {
	*BalanceHandler
	wallets WalletLedger
}

// NewWalletHandler constructs WalletHandler.
func NewWalletHandler(wallets WalletLedger) *WalletHandler {
	return &WalletHandler{BalanceHandler: NewBalanceHandler(wallets), wallets: wallets}
}

// Open handles POST /api/wallets/:id.
func (h *WalletHandler) Open(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	w, err := h.wallets.Open(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK("wallet opened", dto.NewBalanceResponse(*w)))
}
