package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product derives its price from exactly one raw material.
// BasePrice is fixed at creation and never touched by propagation;
// every recomputation anchors to it, so sequential material price
// changes do not compound. Coefficient scales the product's sensitivity
// to the material's relative price change.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string          `gorm:"index;not null"`
	RawMaterialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BasePrice     decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Coefficient   decimal.Decimal `gorm:"type:decimal(8,4);not null;default:1.0"`
	CurrentPrice  decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	Category      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	RawMaterial RawMaterial `gorm:"foreignKey:RawMaterialID"`
}
