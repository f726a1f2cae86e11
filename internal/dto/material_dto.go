package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMaterialRequest struct {
	Name         string          `json:"name"          validate:"required,min=1,max=100"`
	CurrentPrice decimal.Decimal `json:"current_price" validate:"required,gt=0"`
}

type UpdateMaterialRequest struct {
	Name         *string          `json:"name"          validate:"omitempty,min=1,max=100"`
	CurrentPrice *decimal.Decimal `json:"current_price" validate:"omitempty,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MaterialResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	LastUpdated  string          `json:"last_updated"`
}

// ProductChange summarizes one product's recomputation during propagation.
// OldPrice is the product's base price — not its previous current price.
// That matches the original formula's report shape and is relied on by the
// admin panel.
type ProductChange struct {
	ProductID uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
}

// MaterialUpdateResponse pairs the updated material with the products whose
// prices were recomputed by the propagation.
type MaterialUpdateResponse struct {
	Material        MaterialResponse `json:"material"`
	UpdatedProducts []ProductChange  `json:"updated_products"`
}
