package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawMaterial is a priced input that one or more products derive their
// price from. CurrentPrice is rewritten by the material-update endpoint;
// the dependent products are recomputed in the same transaction.
type RawMaterial struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"uniqueIndex;not null"`
	CurrentPrice decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
