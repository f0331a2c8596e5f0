// Package adapters provides the repository implementations for the
// watchlist feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"invest_backend/internal/feature/watchlist/domain/entity"
	"invest_backend/internal/feature/watchlist/usecase"
)

// pgUniqueViolation is the PostgreSQL error code for a unique
// constraint violation.
const pgUniqueViolation = "23505"

type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository creates the GORM implementation of the
// watchlist repository.
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// Add inserts the entry, translating a duplicate owner+symbol into
// usecase.ErrAlreadyOnWatchlist.
func (r *watchlistGorm) Add(ctx context.Context, entry *entity.WatchlistEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrAlreadyOnWatchlist
		}
		return err
	}
	return nil
}

func (r *watchlistGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.WatchlistEntry, error) {
	var entries []entity.WatchlistEntry
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("symbol ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *watchlistGorm) Remove(ctx context.Context, ownerID uint, sym string) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ? AND symbol = ?", ownerID, sym).
		Delete(&entity.WatchlistEntry{}).Error
}

// isDuplicateKey detects a unique violation across the supported
// dialects: the GORM translated error, the raw PostgreSQL 23505 code,
// and the SQLite constraint message.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
