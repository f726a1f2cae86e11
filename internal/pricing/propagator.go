// Package pricing implements price propagation: recomputing every dependent
// product's current price when a raw material's price changes, plus the
// append-only audit record for that change.
package pricing

import (
	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/model"
	"github.com/mnk3936/Highway-metals/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Propagator recomputes dependent product prices from a raw material's
// (old, new) price pair and appends exactly one PriceHistory row.
//
// It never touches the RawMaterial row itself: the caller owns the
// transaction and persists the material's own price inside it, so the
// material and its products commit atomically or not at all.
//
// Two concurrent propagations for the same material are a known race — the
// second caller's oldPrice may be stale by commit time. The store's
// transaction isolation decides the outcome; no extra locking is layered on.
type Propagator struct {
	products repository.ProductRepository
	history  repository.HistoryRepository
}

func NewPropagator(products repository.ProductRepository, history repository.HistoryRepository) *Propagator {
	return &Propagator{products: products, history: history}
}

// Propagate recomputes every product referencing materialID:
//
//	current_price = base_price + base_price * coefficient * (new-old)/old
//
// Recomputation anchors to base_price, never to the previous current price,
// so sequential material changes do not compound. oldPrice must be the
// material's actual prior price; the propagator cannot detect a stale value.
//
// A zero oldPrice fails with ErrZeroOldPrice before anything is read or
// written. Zero dependent products is a valid no-op: the history row is
// still appended and an empty list returned.
func (p *Propagator) Propagate(tx *gorm.DB, materialID uuid.UUID, oldPrice, newPrice decimal.Decimal, actorID *uuid.UUID) ([]dto.ProductChange, error) {
	if oldPrice.IsZero() {
		return nil, ErrZeroOldPrice
	}
	ratio := newPrice.Sub(oldPrice).Div(oldPrice)

	products, err := p.products.FindByMaterialIDTx(tx, materialID)
	if err != nil {
		return nil, err
	}

	changes := make([]dto.ProductChange, 0, len(products))
	for i := range products {
		prod := &products[i]
		current := prod.BasePrice.Add(prod.BasePrice.Mul(prod.Coefficient).Mul(ratio))
		if err := p.products.UpdatePriceTx(tx, prod.ID, current); err != nil {
			return nil, err
		}
		changes = append(changes, dto.ProductChange{
			ProductID: prod.ID,
			Name:      prod.Name,
			OldPrice:  prod.BasePrice,
			NewPrice:  current,
		})
	}

	record := &model.PriceHistory{
		MaterialID: materialID,
		OldPrice:   oldPrice,
		NewPrice:   newPrice,
		ChangedBy:  actorID,
	}
	if err := p.history.AppendTx(tx, record); err != nil {
		return nil, err
	}

	return changes, nil
}
