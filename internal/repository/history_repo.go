package repository

import (
	"context"

	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/model"

	"gorm.io/gorm"
)

// HistoryRepository appends and reads the price-change audit trail.
// The table is append-only: there are deliberately no update or delete methods.
type HistoryRepository interface {
	// AppendTx writes one history row inside the propagation transaction.
	AppendTx(tx *gorm.DB, h *model.PriceHistory) error
	List(ctx context.Context, filter dto.HistoryFilter) ([]model.PriceHistory, int64, error)
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) HistoryRepository { return &historyRepo{db: db} }

func (r *historyRepo) AppendTx(tx *gorm.DB, h *model.PriceHistory) error {
	return tx.Create(h).Error
}

// List returns paginated audit records, newest first.
func (r *historyRepo) List(ctx context.Context, filter dto.HistoryFilter) ([]model.PriceHistory, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.PriceHistory{})
	if filter.MaterialID != "" {
		q = q.Where("material_id = ?", filter.MaterialID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.PriceHistory
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).
		Preload("Material").Find(&rows).Error
	return rows, total, err
}
