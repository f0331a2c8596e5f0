package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"invest_backend/internal/feature/ledger/domain/entity"
	"invest_backend/internal/shared/symbol"
)

// maxParallelQuotes bounds the number of concurrent price lookups when
// valuing a multi-row portfolio.
const maxParallelQuotes = 8

// QuoteProvider supplies the current market price for a symbol.
// Implementations must bound their own timeout and report failures as
// (or wrapped around) ErrQuoteUnavailable.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform).
type QuoteProvider interface {
	GetQuote(ctx context.Context, sym string) (decimal.Decimal, error)
}

// LedgerKey identifies one owner+symbol sub-ledger.
type LedgerKey struct {
	OwnerID uint
	Symbol  string
}

// TransactionStore abstracts the durable, append-only transaction log.
// There is deliberately no update or delete: the log is the ground
// truth positions are recomputed from.
type TransactionStore interface {
	// Append persists a new transaction and fills in its ID and
	// creation time.
	Append(ctx context.Context, txn *entity.Transaction) error

	// ListByOwner returns every transaction of the owner, newest
	// first, for display.
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Transaction, error)

	// ListForReplay returns the owner+symbol sub-ledger oldest first,
	// the order cost-basis arithmetic requires.
	ListForReplay(ctx context.Context, ownerID uint, sym string) ([]entity.Transaction, error)

	// ListKeys returns every distinct owner+symbol pair present in
	// the log.
	ListKeys(ctx context.Context) ([]LedgerKey, error)
}

// PositionStore abstracts the derived position rows.
type PositionStore interface {
	// Get returns the position for owner+symbol, or
	// ErrPositionNotFound when no row exists.
	Get(ctx context.Context, ownerID uint, sym string) (*entity.Position, error)

	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Position, error)

	// Put creates or replaces the row for the position's owner+symbol.
	Put(ctx context.Context, pos *entity.Position) error

	// Delete removes the row. Deleting an absent row is not an error.
	Delete(ctx context.Context, ownerID uint, sym string) error
}

// ledgerUsecase ties the transaction log, the aggregator and the
// valuation together.
type ledgerUsecase struct {
	txns      TransactionStore
	positions PositionStore

	// quotes is the submission-path provider; it must be fresh, a
	// rejected quote rejects the whole submission.
	quotes QuoteProvider
	// viewQuotes prices portfolio reads and may be a cached decorator;
	// a miss there only degrades the affected row to its average cost.
	viewQuotes QuoteProvider

	normalizer symbol.Normalizer
	locks      *keyLock
}

// NewLedgerUsecase creates a new ledgerUsecase. quotes is used for
// transaction submission and viewQuotes for portfolio valuation; pass
// the same provider for both when no read-side cache is wanted.
func NewLedgerUsecase(txns TransactionStore, positions PositionStore, quotes, viewQuotes QuoteProvider, normalizer symbol.Normalizer) *ledgerUsecase {
	if viewQuotes == nil {
		viewQuotes = quotes
	}
	return &ledgerUsecase{
		txns:       txns,
		positions:  positions,
		quotes:     quotes,
		viewQuotes: viewQuotes,
		normalizer: normalizer,
		locks:      newKeyLock(),
	}
}

// SubmitTransaction runs one buy/sell through the ledger:
// normalize the symbol, capture a fresh quote, validate the sell side
// against the current position, append to the log, then recompute and
// persist the position (deleting it when it reaches zero).
//
// Steps after the quote run under the owner+symbol lock, so concurrent
// submissions for the same position serialize instead of racing the
// read-modify-write of the average cost.
func (u *ledgerUsecase) SubmitTransaction(ctx context.Context, ownerID uint, rawSymbol string, kind entity.Kind, quantity int64) (*entity.Transaction, error) {
	sym, err := u.normalizer.Normalize(rawSymbol)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	price, err := u.quotes.GetQuote(ctx, sym)
	if err != nil {
		if !errors.Is(err, ErrQuoteUnavailable) {
			err = fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
		}
		return nil, err
	}
	if price.Sign() <= 0 {
		return nil, fmt.Errorf("%w: non-positive price for %s", ErrQuoteUnavailable, sym)
	}

	unlock := u.locks.Lock(ownerID, sym)
	defer unlock()

	pos, err := u.currentPosition(ctx, ownerID, sym)
	if err != nil {
		return nil, err
	}

	txn := &entity.Transaction{
		OwnerID:   ownerID,
		Symbol:    sym,
		Kind:      kind,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: time.Now(),
	}

	// Validate and compute the next position before committing
	// anything: an over-sell must leave the log untouched.
	next, err := Apply(pos, *txn)
	if err != nil {
		return nil, err
	}

	if err := u.txns.Append(ctx, txn); err != nil {
		return nil, fmt.Errorf("append transaction: %w", err)
	}

	// From here the log is authoritative. If the position write fails
	// the row is recomputed by replay rather than left stale.
	if err := u.storePosition(ctx, ownerID, sym, next); err != nil {
		slog.Error("position write failed after log append, replaying",
			"owner_id", ownerID, "symbol", sym, "error", err)
		// Already holding the key lock, so replay directly.
		if _, rerr := u.recomputeLocked(ctx, ownerID, sym); rerr != nil {
			return nil, fmt.Errorf("persist position: %w", err)
		}
	}

	slog.Info("transaction committed",
		"owner_id", ownerID, "symbol", sym, "kind", kind, "quantity", quantity, "price", price)
	return txn, nil
}

// GetPortfolio values the owner's positions against current quotes.
// Quotes are fetched in parallel across symbols; a symbol whose quote
// cannot be fetched is reported at its average cost and flagged stale.
func (u *ledgerUsecase) GetPortfolio(ctx context.Context, ownerID uint) (PortfolioSummary, error) {
	positions, err := u.positions.ListByOwner(ctx, ownerID)
	if err != nil {
		return PortfolioSummary{}, fmt.Errorf("list positions: %w", err)
	}

	var mu sync.Mutex
	prices := make(map[string]decimal.Decimal, len(positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelQuotes)
	for _, p := range positions {
		sym := p.Symbol
		g.Go(func() error {
			price, err := u.viewQuotes.GetQuote(gctx, sym)
			if err != nil {
				// Display degrades to average cost; only the
				// submission path treats a missing quote as fatal.
				slog.Warn("quote unavailable, valuing at average cost", "symbol", sym, "error", err)
				return nil
			}
			mu.Lock()
			prices[sym] = price
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers swallow quote errors by design

	return Summarize(positions, func(sym string) (decimal.Decimal, bool) {
		price, ok := prices[sym]
		return price, ok
	}), nil
}

// GetTransactionHistory returns the owner's transactions newest first.
func (u *ledgerUsecase) GetTransactionHistory(ctx context.Context, ownerID uint) ([]entity.Transaction, error) {
	return u.txns.ListByOwner(ctx, ownerID)
}

// RecomputePosition rebuilds one position from its full sub-ledger and
// persists the result, deleting the row when the ledger nets to zero.
// It returns the recomputed position, nil when the position is closed.
func (u *ledgerUsecase) RecomputePosition(ctx context.Context, ownerID uint, sym string) (*entity.Position, error) {
	unlock := u.locks.Lock(ownerID, sym)
	defer unlock()
	return u.recomputeLocked(ctx, ownerID, sym)
}

func (u *ledgerUsecase) recomputeLocked(ctx context.Context, ownerID uint, sym string) (*entity.Position, error) {
	txns, err := u.txns.ListForReplay(ctx, ownerID, sym)
	if err != nil {
		return nil, fmt.Errorf("load ledger for %s: %w", sym, err)
	}
	pos, err := Replay(txns)
	if err != nil {
		return nil, err
	}
	if err := u.storePosition(ctx, ownerID, sym, pos); err != nil {
		return nil, fmt.Errorf("persist replayed position for %s: %w", sym, err)
	}
	return pos, nil
}

// ReconcileAll replays every owner+symbol sub-ledger and rewrites the
// derived position rows. It is the recovery path for a position write
// that failed after its log append, and runs on a schedule.
func (u *ledgerUsecase) ReconcileAll(ctx context.Context) error {
	keys, err := u.txns.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("list ledger keys: %w", err)
	}

	var errs []error
	for _, k := range keys {
		if _, err := u.RecomputePosition(ctx, k.OwnerID, k.Symbol); err != nil {
			errs = append(errs, fmt.Errorf("reconcile owner %d %s: %w", k.OwnerID, k.Symbol, err))
		}
	}
	slog.Info("position reconciliation finished", "ledgers", len(keys), "failed", len(errs))
	return errors.Join(errs...)
}

func (u *ledgerUsecase) currentPosition(ctx context.Context, ownerID uint, sym string) (*entity.Position, error) {
	pos, err := u.positions.Get(ctx, ownerID, sym)
	if err != nil {
		if errors.Is(err, ErrPositionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load position: %w", err)
	}
	return pos, nil
}

func (u *ledgerUsecase) storePosition(ctx context.Context, ownerID uint, sym string, pos *entity.Position) error {
	if pos == nil {
		return u.positions.Delete(ctx, ownerID, sym)
	}
	return u.positions.Put(ctx, pos)
}
