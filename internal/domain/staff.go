package domain

import (
	"time"

	"github.com/google/uuid"
)

// Staff accounts are registered by seeding or by an admin; there is no
// self-serve signup.
type Staff struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:140;uniqueIndex"`
	Name         string    `gorm:"size:140"`
	PasswordHash string    `gorm:"size:100"`
	CreatedAt    time.Time
}
