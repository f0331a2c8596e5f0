// Package handler provides the HTTP handlers for the position ledger.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"invest_backend/internal/feature/ledger/domain/entity"
	"invest_backend/internal/feature/ledger/transport/http/dto"
	"invest_backend/internal/feature/ledger/usecase"
	jwtmw "invest_backend/internal/platform/jwt"
	"invest_backend/internal/shared/symbol"
)

// LedgerUsecase defines the ledger operations the HTTP layer consumes.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type LedgerUsecase interface {
	SubmitTransaction(ctx context.Context, ownerID uint, rawSymbol string, kind entity.Kind, quantity int64) (*entity.Transaction, error)
	GetPortfolio(ctx context.Context, ownerID uint) (usecase.PortfolioSummary, error)
	GetTransactionHistory(ctx context.Context, ownerID uint) ([]entity.Transaction, error)
}

// LedgerHandler handles transaction submission, history and portfolio
// requests.
type LedgerHandler struct {
	uc LedgerUsecase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(uc LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Submit handles POST /transactions.
// Validation failures and over-sells come back as 400, a missing quote
// as 502 (the upstream provider is at fault and the caller may retry).
func (h *LedgerHandler) Submit(c *gin.Context) {
	var req dto.SubmitTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ownerID := c.GetUint(jwtmw.ContextUserID)
	txn, err := h.uc.SubmitTransaction(c.Request.Context(), ownerID, req.Symbol, entity.Kind(req.Kind), req.Quantity)
	if err != nil {
		status := statusForLedgerError(err)
		if status == http.StatusInternalServerError {
			slog.Error("transaction submission failed", "owner_id", ownerID, "symbol", req.Symbol, "error", err)
			c.JSON(status, gin.H{"error": "internal error"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitTransactionResponse{
		Status:      "COMMITTED",
		Transaction: toTransactionItem(*txn),
	})
}

// History handles GET /transactions, newest first.
func (h *LedgerHandler) History(c *gin.Context) {
	ownerID := c.GetUint(jwtmw.ContextUserID)
	txns, err := h.uc.GetTransactionHistory(c.Request.Context(), ownerID)
	if err != nil {
		slog.Error("transaction history failed", "owner_id", ownerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	out := make([]dto.TransactionItem, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionItem(t))
	}
	c.JSON(http.StatusOK, out)
}

// Portfolio handles GET /portfolio.
func (h *LedgerHandler) Portfolio(c *gin.Context) {
	ownerID := c.GetUint(jwtmw.ContextUserID)
	summary, err := h.uc.GetPortfolio(c.Request.Context(), ownerID)
	if err != nil {
		slog.Error("portfolio valuation failed", "owner_id", ownerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	rows := make([]dto.PortfolioRowItem, 0, len(summary.Rows))
	for _, r := range summary.Rows {
		rows = append(rows, dto.PortfolioRowItem{
			Symbol:       r.Symbol,
			Quantity:     r.Quantity,
			AvgCost:      r.AvgCost,
			CurrentPrice: r.CurrentPrice,
			Invested:     r.Invested,
			MarketValue:  r.MarketValue,
			PnL:          r.PnL,
			Stale:        r.Stale,
		})
	}
	c.JSON(http.StatusOK, dto.PortfolioResponse{
		TotalInvested: summary.TotalInvested,
		MarketValue:   summary.MarketValue,
		PnL:           summary.PnL,
		Holdings:      summary.Holdings,
		Positions:     rows,
	})
}

func statusForLedgerError(err error) int {
	switch {
	case errors.Is(err, symbol.ErrInvalid),
		errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrInvalidKind),
		errors.Is(err, usecase.ErrInsufficientShares):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrQuoteUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toTransactionItem(t entity.Transaction) dto.TransactionItem {
	return dto.TransactionItem{
		ID:        t.ID,
		Symbol:    t.Symbol,
		Kind:      string(t.Kind),
		Quantity:  t.Quantity,
		Price:     t.Price,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
