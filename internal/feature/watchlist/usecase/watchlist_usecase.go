// Package usecase implements the business logic for the watchlist.
package usecase

import (
	"context"
	"errors"

	"invest_backend/internal/feature/watchlist/domain/entity"
	"invest_backend/internal/shared/symbol"
)

// ErrAlreadyOnWatchlist is returned when the owner already watches the
// symbol.
var ErrAlreadyOnWatchlist = errors.New("stock already on watchlist")

// WatchlistRepository abstracts the persistence layer for watchlist
// entries.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type WatchlistRepository interface {
	// Add persists a new entry, returning ErrAlreadyOnWatchlist when
	// the owner+symbol pair already exists.
	Add(ctx context.Context, entry *entity.WatchlistEntry) error

	ListByOwner(ctx context.Context, ownerID uint) ([]entity.WatchlistEntry, error)

	// Remove deletes the entry. Removing an absent entry is a no-op.
	Remove(ctx context.Context, ownerID uint, sym string) error
}

// watchlistUsecase applies the shared symbol normalization rule before
// touching the repository, so the watchlist and the ledger always agree
// on the canonical ticker.
type watchlistUsecase struct {
	repo       WatchlistRepository
	normalizer symbol.Normalizer
}

// NewWatchlistUsecase creates a new watchlistUsecase.
func NewWatchlistUsecase(repo WatchlistRepository, normalizer symbol.Normalizer) *watchlistUsecase {
	return &watchlistUsecase{repo: repo, normalizer: normalizer}
}

// Add puts the normalized symbol on the owner's watchlist.
func (u *watchlistUsecase) Add(ctx context.Context, ownerID uint, rawSymbol string) (*entity.WatchlistEntry, error) {
	sym, err := u.normalizer.Normalize(rawSymbol)
	if err != nil {
		return nil, err
	}
	entry := &entity.WatchlistEntry{OwnerID: ownerID, Symbol: sym}
	if err := u.repo.Add(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns the owner's watchlist.
func (u *watchlistUsecase) List(ctx context.Context, ownerID uint) ([]entity.WatchlistEntry, error) {
	return u.repo.ListByOwner(ctx, ownerID)
}

// Remove takes the normalized symbol off the owner's watchlist.
func (u *watchlistUsecase) Remove(ctx context.Context, ownerID uint, rawSymbol string) error {
	sym, err := u.normalizer.Normalize(rawSymbol)
	if err != nil {
		return err
	}
	return u.repo.Remove(ctx, ownerID, sym)
}
