package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name          string           `json:"name"            validate:"required,min=1,max=150"`
	RawMaterialID string           `json:"raw_material_id" validate:"required,uuid"`
	BasePrice     decimal.Decimal  `json:"base_price"      validate:"required,gt=0"`
	Coefficient   *decimal.Decimal `json:"coefficient"`
	Category      *string          `json:"category"        validate:"omitempty,max=100"`
}

// UpdateProductRequest deliberately omits base_price and raw_material_id:
// both are immutable after creation.
type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=1,max=150"`
	Coefficient *decimal.Decimal `json:"coefficient"`
	Category    *string          `json:"category"    validate:"omitempty,max=100"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	Category   string `form:"category"`
	MaterialID string `form:"material_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	RawMaterialID   string          `json:"raw_material_id"`
	RawMaterialName string          `json:"raw_material_name"`
	BasePrice       decimal.Decimal `json:"base_price"`
	Coefficient     decimal.Decimal `json:"coefficient"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	Category        *string         `json:"category"`
	LastUpdated     string          `json:"last_updated"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
