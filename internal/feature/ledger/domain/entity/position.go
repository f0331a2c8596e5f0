package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the derived current holding for one owner+symbol pair.
// It is a cache of a fold over the transaction log: the log stays
// authoritative and a position can always be rebuilt by replay.
// A row exists only while TotalQuantity > 0; closing a position deletes
// the row rather than leaving a zero-quantity stub with a stale cost.
type Position struct {
	OwnerID       uint
	Symbol        string
	TotalQuantity int64
	// AvgCost is the quantity-weighted average purchase price of the
	// currently held shares. Only BUY transactions move it.
	AvgCost   decimal.Decimal
	UpdatedAt time.Time
}

// Invested returns the cost basis of the position, quantity times
// average cost.
func (p Position) Invested() decimal.Decimal {
	return p.AvgCost.Mul(decimal.NewFromInt(p.TotalQuantity))
}
