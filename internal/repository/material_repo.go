package repository

import (
	"context"

	"github.com/mnk3936/Highway-metals/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialRepository defines the data access contract for raw materials.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type MaterialRepository interface {
	Create(ctx context.Context, m *model.RawMaterial) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error)
	FindByName(ctx context.Context, name string) (*model.RawMaterial, error)
	List(ctx context.Context) ([]model.RawMaterial, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SaveTx persists the material inside the caller's transaction, so the
	// material's own price lands atomically with the propagated product prices.
	SaveTx(tx *gorm.DB, m *model.RawMaterial) error

	// Transaction is the explicit unit-of-work boundary for propagation.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) Create(ctx context.Context, m *model.RawMaterial) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	var m model.RawMaterial
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) FindByName(ctx context.Context, name string) (*model.RawMaterial, error) {
	var m model.RawMaterial
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) List(ctx context.Context) ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := r.db.WithContext(ctx).Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.RawMaterial{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *materialRepo) SaveTx(tx *gorm.DB, m *model.RawMaterial) error {
	return tx.Save(m).Error
}

func (r *materialRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
