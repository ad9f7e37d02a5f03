package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:140" json:"name"`
	Phone       string    `gorm:"size:30;uniqueIndex" json:"phone"`
	Email       string    `gorm:"size:140" json:"email"`
	Address     string    `gorm:"size:255" json:"address,omitempty"`
	CreatedDate time.Time `json:"createdDate"`
}
