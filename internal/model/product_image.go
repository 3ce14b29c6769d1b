package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage is one image url of a product. Images are ordered by CreatedAt, then ID.
type ProductImage struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:char(36);not null;index"`
	ImageURL  string    `json:"image_url" gorm:"size:2048;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}
