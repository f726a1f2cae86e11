package service

import (
	"context"
	"errors"
	"time"

	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/model"
	"github.com/mnk3936/Highway-metals/internal/pricing"
	"github.com/mnk3936/Highway-metals/internal/repository"
	"github.com/mnk3936/Highway-metals/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrDuplicateMaterial  = errors.New("raw material with that name already exists")
	ErrMaterialReferenced = errors.New("raw material is referenced by existing products")
)

type MaterialService interface {
	Create(ctx context.Context, req dto.CreateMaterialRequest) (*dto.MaterialResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	List(ctx context.Context) ([]dto.MaterialResponse, error)
	// Update renames a material and/or changes its price. A price change
	// recalculates every dependent product and records one history row, all
	// inside a single transaction.
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest, actorID *uuid.UUID) (*dto.MaterialUpdateResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type materialService struct {
	materials  repository.MaterialRepository
	products   repository.ProductRepository
	propagator *pricing.Propagator
	dispatcher *worker.Dispatcher
}

func NewMaterialService(
	materials repository.MaterialRepository,
	products repository.ProductRepository,
	propagator *pricing.Propagator,
	dispatcher *worker.Dispatcher,
) MaterialService {
	return &materialService{
		materials:  materials,
		products:   products,
		propagator: propagator,
		dispatcher: dispatcher,
	}
}

func (s *materialService) Create(ctx context.Context, req dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if _, err := s.materials.FindByName(ctx, req.Name); err == nil {
		return nil, ErrDuplicateMaterial
	}

	m := &model.RawMaterial{
		Name:         req.Name,
		CurrentPrice: req.CurrentPrice,
	}
	if err := s.materials.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := toMaterialResponse(m)
	return &resp, nil
}

func (s *materialService) Get(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	m, err := s.materials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMaterialResponse(m)
	return &resp, nil
}

func (s *materialService) List(ctx context.Context) ([]dto.MaterialResponse, error) {
	materials, err := s.materials.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		out = append(out, toMaterialResponse(&materials[i]))
	}
	return out, nil
}

func (s *materialService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest, actorID *uuid.UUID) (*dto.MaterialUpdateResponse, error) {
	m, err := s.materials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPrice := m.CurrentPrice
	priceChanged := req.CurrentPrice != nil && !req.CurrentPrice.Equal(oldPrice)

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.CurrentPrice != nil {
		m.CurrentPrice = *req.CurrentPrice
	}

	var changes []dto.ProductChange
	err = s.materials.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.materials.SaveTx(tx, m); err != nil {
			return err
		}
		if !priceChanged {
			return nil
		}
		var perr error
		changes, perr = s.propagator.Propagate(tx, m.ID, oldPrice, m.CurrentPrice, actorID)
		return perr
	})
	if err != nil {
		var derr *pricing.DomainError
		if errors.As(err, &derr) {
			return nil, err
		}
		var serr *pricing.StorageError
		if errors.As(err, &serr) {
			return nil, err
		}
		return nil, &pricing.StorageError{Err: err}
	}

	if priceChanged {
		s.notifyPriceChange(ctx, m, oldPrice, actorID, len(changes))
	}

	if changes == nil {
		changes = []dto.ProductChange{}
	}
	return &dto.MaterialUpdateResponse{
		Material:        toMaterialResponse(m),
		UpdatedProducts: changes,
	}, nil
}

func (s *materialService) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.products.CountByMaterialID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrMaterialReferenced
	}
	return s.materials.Delete(ctx, id)
}

// notifyPriceChange enqueues an alert job after the transaction has committed.
// Failures are logged and swallowed: alerting never fails a price update.
func (s *materialService) notifyPriceChange(ctx context.Context, m *model.RawMaterial, oldPrice decimal.Decimal, actorID *uuid.UUID, productsChanged int) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.PriceAlertPayload{
		MaterialID:      m.ID.String(),
		MaterialName:    m.Name,
		OldPrice:        oldPrice.String(),
		NewPrice:        m.CurrentPrice.String(),
		ProductsChanged: productsChanged,
	}
	if actorID != nil {
		actor := actorID.String()
		payload.ChangedBy = &actor
	}
	if err := s.dispatcher.EnqueuePriceAlert(ctx, payload); err != nil {
		log.Warn().Err(err).Str("material_id", payload.MaterialID).Msg("price alert enqueue failed")
	}
}

func toMaterialResponse(m *model.RawMaterial) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		CurrentPrice: m.CurrentPrice,
		LastUpdated:  m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
