package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"invest_backend/internal/feature/ledger/domain/entity"
)

// Apply folds one transaction into a position and returns the resulting
// position. A nil input means no position exists yet; a nil result means
// the position is closed and its row must be deleted, not zeroed.
//
// BUY recomputes the average cost as the quantity-weighted average of
// the old holding and the new lot. SELL reduces the quantity and leaves
// the average cost untouched; selling more than is held fails with
// ErrInsufficientShares.
//
// Apply is a pure function. Folding the log oldest-first through it is
// the reference semantics for a position: incremental application and
// full replay must always agree, and that only holds when transactions
// are applied in log order.
func Apply(pos *entity.Position, txn entity.Transaction) (*entity.Position, error) {
	if txn.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var oldQty int64
	oldCost := decimal.Zero
	if pos != nil {
		oldQty = pos.TotalQuantity
		oldCost = pos.AvgCost
	}

	switch txn.Kind {
	case entity.KindBuy:
		newQty := oldQty + txn.Quantity
		newCost := decimal.Zero
		// newQty cannot be zero here since both terms are positive,
		// but guard the division anyway.
		if newQty > 0 {
			held := oldCost.Mul(decimal.NewFromInt(oldQty))
			bought := txn.Price.Mul(decimal.NewFromInt(txn.Quantity))
			newCost = held.Add(bought).Div(decimal.NewFromInt(newQty))
		}
		return &entity.Position{
			OwnerID:       txn.OwnerID,
			Symbol:        txn.Symbol,
			TotalQuantity: newQty,
			AvgCost:       newCost,
		}, nil

	case entity.KindSell:
		if txn.Quantity > oldQty {
			return nil, ErrInsufficientShares
		}
		newQty := oldQty - txn.Quantity
		if newQty <= 0 {
			return nil, nil
		}
		return &entity.Position{
			OwnerID:       txn.OwnerID,
			Symbol:        txn.Symbol,
			TotalQuantity: newQty,
			AvgCost:       oldCost,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, txn.Kind)
	}
}

// Replay rebuilds a position from scratch by folding an oldest-first
// transaction sequence through Apply. It returns nil when the sequence
// is empty or nets out to zero shares.
func Replay(txns []entity.Transaction) (*entity.Position, error) {
	var pos *entity.Position
	for _, txn := range txns {
		next, err := Apply(pos, txn)
		if err != nil {
			return nil, fmt.Errorf("replay %s txn %d: %w", txn.Symbol, txn.ID, err)
		}
		pos = next
	}
	return pos, nil
}
