// Package adapters provides the GORM-backed stores for the ledger.
package adapters

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"invest_backend/internal/feature/ledger/domain/entity"
	"invest_backend/internal/feature/ledger/usecase"
)

// TransactionModel is the persistence shape of a ledger transaction.
// Rows are insert-only; there is no code path that updates or deletes
// them.
type TransactionModel struct {
	ID       uint   `gorm:"primaryKey"`
	OwnerID  uint   `gorm:"not null;index:txn_owner_symbol,priority:1"`
	Symbol   string `gorm:"size:20;not null;index:txn_owner_symbol,priority:2"`
	Kind     string `gorm:"size:4;not null"`
	Quantity int64  `gorm:"not null"`

	Price     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CreatedAt time.Time       `gorm:"not null;index"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

type transactionGorm struct {
	db *gorm.DB
}

var _ usecase.TransactionStore = (*transactionGorm)(nil)

// NewTransactionStore creates the GORM implementation of the
// transaction log.
func NewTransactionStore(db *gorm.DB) *transactionGorm {
	return &transactionGorm{db: db}
}

// Append inserts the transaction and writes the assigned ID and
// creation time back into the entity.
func (r *transactionGorm) Append(ctx context.Context, txn *entity.Transaction) error {
	m := TransactionModel{
		OwnerID:   txn.OwnerID,
		Symbol:    txn.Symbol,
		Kind:      string(txn.Kind),
		Quantity:  txn.Quantity,
		Price:     txn.Price,
		CreatedAt: txn.CreatedAt,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	txn.ID = m.ID
	txn.CreatedAt = m.CreatedAt
	return nil
}

// ListByOwner returns the owner's transactions newest first.
func (r *transactionGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Transaction, error) {
	var rows []TransactionModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// ListForReplay returns the owner+symbol sub-ledger oldest first, with
// the row ID breaking timestamp ties, which is the order a fold must
// consume it in.
func (r *transactionGorm) ListForReplay(ctx context.Context, ownerID uint, sym string) ([]entity.Transaction, error) {
	var rows []TransactionModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND symbol = ?", ownerID, sym).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// ListKeys returns every distinct owner+symbol pair in the log.
func (r *transactionGorm) ListKeys(ctx context.Context) ([]usecase.LedgerKey, error) {
	var keys []usecase.LedgerKey
	if err := r.db.WithContext(ctx).
		Model(&TransactionModel{}).
		Distinct().
		Select("owner_id", "symbol").
		Order("owner_id, symbol").
		Scan(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func toEntities(rows []TransactionModel) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Transaction{
			ID:        m.ID,
			OwnerID:   m.OwnerID,
			Symbol:    m.Symbol,
			Kind:      entity.Kind(m.Kind),
			Quantity:  m.Quantity,
			Price:     m.Price,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
