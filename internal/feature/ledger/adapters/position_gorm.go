package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"invest_backend/internal/feature/ledger/domain/entity"
	"invest_backend/internal/feature/ledger/usecase"
)

// PositionModel is the persistence shape of a derived position row,
// one per owner+symbol.
type PositionModel struct {
	ID            uint   `gorm:"primaryKey"`
	OwnerID       uint   `gorm:"not null;uniqueIndex:pos_owner_symbol,priority:1"`
	Symbol        string `gorm:"size:20;not null;uniqueIndex:pos_owner_symbol,priority:2"`
	TotalQuantity int64  `gorm:"not null"`

	AvgCost   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (PositionModel) TableName() string {
	return "positions"
}

type positionGorm struct {
	db *gorm.DB
}

var _ usecase.PositionStore = (*positionGorm)(nil)

// NewPositionStore creates the GORM implementation of the position
// store.
func NewPositionStore(db *gorm.DB) *positionGorm {
	return &positionGorm{db: db}
}

// Get returns the position for owner+symbol, or
// usecase.ErrPositionNotFound when no row exists.
func (r *positionGorm) Get(ctx context.Context, ownerID uint, sym string) (*entity.Position, error) {
	var m PositionModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND symbol = ?", ownerID, sym).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPositionNotFound
		}
		return nil, err
	}
	e := toPosition(m)
	return &e, nil
}

func (r *positionGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Position, error) {
	var rows []PositionModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("symbol ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Position, 0, len(rows))
	for _, m := range rows {
		out = append(out, toPosition(m))
	}
	return out, nil
}

// Put creates or replaces the row for the position's owner+symbol.
func (r *positionGorm) Put(ctx context.Context, pos *entity.Position) error {
	m := PositionModel{
		OwnerID:       pos.OwnerID,
		Symbol:        pos.Symbol,
		TotalQuantity: pos.TotalQuantity,
		AvgCost:       pos.AvgCost,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_quantity", "avg_cost", "updated_at"}),
	}).Create(&m).Error
}

// Delete removes the row for owner+symbol. An absent row is fine: the
// invariant is simply "no row exists" once a position is closed.
func (r *positionGorm) Delete(ctx context.Context, ownerID uint, sym string) error {
	return r.db.WithContext(ctx).
		Where("owner_id = ? AND symbol = ?", ownerID, sym).
		Delete(&PositionModel{}).Error
}

func toPosition(m PositionModel) entity.Position {
	return entity.Position{
		OwnerID:       m.OwnerID,
		Symbol:        m.Symbol,
		TotalQuantity: m.TotalQuantity,
		AvgCost:       m.AvgCost,
		UpdatedAt:     m.UpdatedAt,
	}
}
