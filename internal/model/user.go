package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores panel accounts. IsAdmin gates every mutating endpoint.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
}
