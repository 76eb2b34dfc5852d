package models

import "github.com/google/uuid"

// Product represents a catalog item belonging to exactly one category.
// The Category association is only populated by reads that join it.
type Product struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	CategoryID  uuid.UUID `gorm:"type:char(36);not null;index"`
	Category    Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (p *Product) TableName() string {
	return "Product"
}
