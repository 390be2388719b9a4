package handlers

import (
	"github.com/gin-gonic/gin"

	"kassa/internal/domain/ledger"
	"kassa/internal/infrastructure/http/v1/dto"
)

// LedgerHandler serves derived account balances and history.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{BaseHandler: base, service: service}
}

// Balances handles GET /balances
func (h *LedgerHandler) Balances(c *gin.Context) {
	opts := ledger.BalanceOptions{
		IncludeInactive: c.Query("includeInactive") == "true",
	}

	items, err := h.service.Balances(c.Request.Context(), opts)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBalances(items))
}

// AccountBalance handles GET /accounts/:id/balance
func (h *LedgerHandler) AccountBalance(c *gin.Context) {
	accountID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.service.AccountBalance(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBalance(b))
}

// AccountHistory handles GET /accounts/:id/history
func (h *LedgerHandler) AccountHistory(c *gin.Context) {
	accountID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.service.AccountHistory(c.Request.Context(), accountID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromHistory(entries))
}
