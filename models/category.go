package models

import "github.com/google/uuid"

// Category represents a named grouping of products.
// The name is the natural lookup key but is not unique at the store level.
type Category struct {
	ID   uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name string    `gorm:"not null"`
}

func (c *Category) TableName() string {
	return "Category"
}
