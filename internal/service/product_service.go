package service

import (
	"context"
	"errors"
	"time"

	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/model"
	"github.com/mnk3936/Highway-metals/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrUnknownMaterial = errors.New("raw material not found")

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	products  repository.ProductRepository
	materials repository.MaterialRepository
}

func NewProductService(products repository.ProductRepository, materials repository.MaterialRepository) ProductService {
	return &productService{products: products, materials: materials}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	materialID, err := uuid.Parse(req.RawMaterialID)
	if err != nil {
		return nil, ErrUnknownMaterial
	}
	material, err := s.materials.FindByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownMaterial
		}
		return nil, err
	}

	coefficient := decimal.NewFromInt(1)
	if req.Coefficient != nil {
		coefficient = *req.Coefficient
	}

	p := &model.Product{
		Name:          req.Name,
		RawMaterialID: material.ID,
		BasePrice:     req.BasePrice,
		Coefficient:   coefficient,
		CurrentPrice:  req.BasePrice,
		Category:      req.Category,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	p.RawMaterial = *material
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, toProductResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Update changes presentation fields only. The base price and the material
// link are fixed at creation; a new coefficient takes effect on the next
// material price change.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Coefficient != nil {
		p.Coefficient = *req.Coefficient
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.products.Delete(ctx, id)
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		RawMaterialID:   p.RawMaterialID.String(),
		RawMaterialName: p.RawMaterial.Name,
		BasePrice:       p.BasePrice,
		Coefficient:     p.Coefficient,
		CurrentPrice:    p.CurrentPrice,
		Category:        p.Category,
		LastUpdated:     p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
