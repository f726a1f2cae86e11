package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceHistory records one raw-material price change.
// Rows are immutable — never updated or deleted.
type PriceHistory struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OldPrice   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	NewPrice   decimal.Decimal `gorm:"type:decimal(14,4);not null"`
	// ChangedBy is the acting user, nil for changes made outside a session.
	ChangedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	Material RawMaterial `gorm:"foreignKey:MaterialID"`
}
