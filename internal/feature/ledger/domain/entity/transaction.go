// Package entity defines the domain models for the position ledger.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the side of a ledger transaction.
type Kind string

const (
	// KindBuy adds shares to a position at the quoted price.
	KindBuy Kind = "BUY"
	// KindSell removes shares from a position. It never changes the
	// average cost of the remaining shares.
	KindSell Kind = "SELL"
)

// Valid reports whether k is one of the known transaction kinds.
func (k Kind) Valid() bool {
	return k == KindBuy || k == KindSell
}

// Transaction is one immutable buy/sell event in the ledger.
// The price is the provider quote captured at submission time, never a
// user-supplied value. Once appended a transaction is never updated or
// deleted; positions are recomputed from the log instead.
type Transaction struct {
	ID       uint
	OwnerID  uint
	Symbol   string
	Kind     Kind
	Quantity int64
	Price    decimal.Decimal
	// CreatedAt orders the log. Within one owner+symbol it is
	// non-decreasing, with the row ID as tie-breaker.
	CreatedAt time.Time
}
