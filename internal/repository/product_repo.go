package repository

import (
	"context"

	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByMaterialID backs the restrict-if-referenced deletion policy.
	CountByMaterialID(ctx context.Context, materialID uuid.UUID) (int64, error)

	// Used inside propagation transactions — callers must pass the tx instance
	FindByMaterialIDTx(tx *gorm.DB, materialID uuid.UUID) ([]model.Product, error)
	UpdatePriceTx(tx *gorm.DB, id uuid.UUID, price decimal.Decimal) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("RawMaterial").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.MaterialID != "" {
		q = q.Where("raw_material_id = ?", filter.MaterialID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).
		Preload("RawMaterial").Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Preload("RawMaterial").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) CountByMaterialID(ctx context.Context, materialID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("raw_material_id = ?", materialID).Count(&n).Error
	return n, err
}

func (r *productRepo) FindByMaterialIDTx(tx *gorm.DB, materialID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := tx.Where("raw_material_id = ?", materialID).Find(&products).Error
	return products, err
}

func (r *productRepo) UpdatePriceTx(tx *gorm.DB, id uuid.UUID, price decimal.Decimal) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("current_price", price).Error
}
