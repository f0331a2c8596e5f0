// Package usecase implements the position ledger: the transaction log,
// the position aggregator and the portfolio valuation.
package usecase

import "errors"

var (
	// ErrInvalidQuantity is returned when a submission asks for a
	// non-positive number of shares. Rejected before any write.
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")

	// ErrInvalidKind is returned when a transaction is neither a BUY
	// nor a SELL.
	ErrInvalidKind = errors.New("transaction kind must be BUY or SELL")

	// ErrInsufficientShares is returned when a SELL asks for more
	// shares than the current position holds. The check runs before
	// the transaction is appended, so a rejected sell leaves both the
	// log and the position untouched.
	ErrInsufficientShares = errors.New("not enough shares to sell")

	// ErrQuoteUnavailable is returned when the price provider cannot
	// supply a current quote. Submissions fail with it rather than
	// falling back to a stale price; callers may retry.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrPositionNotFound is returned by a PositionStore when no row
	// exists for the owner+symbol pair.
	ErrPositionNotFound = errors.New("position not found")
)
