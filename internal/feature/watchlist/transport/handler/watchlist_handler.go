// Package handler provides the HTTP handlers for the watchlist feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"invest_backend/internal/feature/watchlist/domain/entity"
	"invest_backend/internal/feature/watchlist/transport/http/dto"
	"invest_backend/internal/feature/watchlist/usecase"
	jwtmw "invest_backend/internal/platform/jwt"
	"invest_backend/internal/shared/symbol"
)

// WatchlistUsecase defines the watchlist operations the HTTP layer
// consumes.
type WatchlistUsecase interface {
	Add(ctx context.Context, ownerID uint, rawSymbol string) (*entity.WatchlistEntry, error)
	List(ctx context.Context, ownerID uint) ([]entity.WatchlistEntry, error)
	Remove(ctx context.Context, ownerID uint, rawSymbol string) error
}

// WatchlistHandler handles watchlist HTTP requests.
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler creates a new WatchlistHandler.
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List handles GET /watchlist.
func (h *WatchlistHandler) List(c *gin.Context) {
	ownerID := c.GetUint(jwtmw.ContextUserID)
	entries, err := h.uc.List(c.Request.Context(), ownerID)
	if err != nil {
		slog.Error("watchlist list failed", "owner_id", ownerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]dto.WatchlistItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.WatchlistItem{Symbol: e.Symbol})
	}
	c.JSON(http.StatusOK, out)
}

// Add handles POST /watchlist.
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req dto.AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock symbol required"})
		return
	}

	ownerID := c.GetUint(jwtmw.ContextUserID)
	entry, err := h.uc.Add(c.Request.Context(), ownerID, req.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, symbol.ErrInvalid), errors.Is(err, usecase.ErrAlreadyOnWatchlist):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("watchlist add failed", "owner_id", ownerID, "symbol", req.Symbol, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusCreated, dto.WatchlistItem{Symbol: entry.Symbol})
}

// Remove handles DELETE /watchlist/:symbol. Removing a symbol that is
// not on the list still returns 200, the end state is the same.
func (h *WatchlistHandler) Remove(c *gin.Context) {
	ownerID := c.GetUint(jwtmw.ContextUserID)
	if err := h.uc.Remove(c.Request.Context(), ownerID, c.Param("symbol")); err != nil {
		if errors.Is(err, symbol.ErrInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("watchlist remove failed", "owner_id", ownerID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stock removed"})
}
