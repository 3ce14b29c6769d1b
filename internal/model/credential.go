package model

import (
	"time"

	"github.com/google/uuid"
)

// Credential is the password login for a subject. It shares its ID with the User row.
type Credential struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
