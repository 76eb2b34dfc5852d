package database

import (
	"fmt"

	"github.com/mytheresa/product-catalog/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the Category and Product tables.
// Category must be migrated first so the Product foreign key can reference it.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		return fmt.Errorf("database: migrate: %w", err)
	}
	return nil
}
