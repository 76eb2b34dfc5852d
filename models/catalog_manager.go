package models

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mytheresa/product-catalog/app/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionFactory hands out a fresh store session bound to ctx. The manager
// invokes it once per store interaction and never keeps the result around.
type SessionFactory func(ctx context.Context) *gorm.DB

// NewSessionFactory returns a SessionFactory backed by the connection pool of db.
func NewSessionFactory(db *gorm.DB) SessionFactory {
	return func(ctx context.Context) *gorm.DB {
		return db.WithContext(ctx)
	}
}

// CatalogManager holds the catalog rules for products and categories.
//
// The duplicate check, category creation and product insert in CreateProduct
// run as separate commits. Two concurrent creates for the same product and
// category can both pass the check, and two concurrent creates of a new
// category name can both insert it.
type CatalogManager struct {
	sessions SessionFactory
	log      *logger.Logger
}

func NewCatalogManager(sessions SessionFactory, log *logger.Logger) *CatalogManager {
	return &CatalogManager{
		sessions: sessions,
		log:      log.With("component", "CatalogManager"),
	}
}

// CreateProduct stores a new product under the named category, creating the
// category when no category with that name exists yet. When a product with
// the same name already exists in a category with the same name nothing is
// written and uuid.Nil is returned.
func (m *CatalogManager) CreateProduct(ctx context.Context, productName, productDescription, categoryName string) (uuid.UUID, error) {
	exists, err := m.isExistingProduct(ctx, productName, categoryName)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		m.log.Debug("product already exists", "product", productName, "category", categoryName)
		return uuid.Nil, nil
	}

	categoryID, err := m.getCategoryID(ctx, categoryName)
	if err != nil {
		return uuid.Nil, err
	}
	if categoryID == uuid.Nil {
		categoryID, err = m.createCategory(ctx, categoryName)
		if err != nil {
			return uuid.Nil, err
		}
	}

	product := Product{
		ID:          uuid.New(),
		Name:        productName,
		Description: productDescription,
		CategoryID:  categoryID,
	}
	if err := m.sessions(ctx).Omit(clause.Associations).Create(&product).Error; err != nil {
		return uuid.Nil, fmt.Errorf("create product %q: %w", productName, err)
	}

	m.log.Debug("product created", "product_id", product.ID, "category_id", categoryID)
	return product.ID, nil
}

// GetCategories returns every category, or nil when there are none.
func (m *CatalogManager) GetCategories(ctx context.Context) ([]CategoryView, error) {
	var categories []Category
	if err := m.sessions(ctx).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return toCategoryViews(categories), nil
}

// GetProducts returns every product with its category, or nil when there are none.
func (m *CatalogManager) GetProducts(ctx context.Context) ([]ProductView, error) {
	var products []Product
	if err := m.sessions(ctx).Joins("Category").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return toProductViews(products), nil
}

// GetProductsForCategory returns the products of the given category, or nil
// when there are none. An unknown category id is not an error.
func (m *CatalogManager) GetProductsForCategory(ctx context.Context, categoryID uuid.UUID) ([]ProductView, error) {
	var products []Product
	if err := m.sessions(ctx).
		Joins("Category").
		Where(clause.Eq{Column: clause.Column{Table: "Category", Name: "id"}, Value: categoryID}).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products for category %s: %w", categoryID, err)
	}
	return toProductViews(products), nil
}

// DeleteProduct removes the product with the given id. It reports false,
// without error, when no such product exists.
func (m *CatalogManager) DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var product Product
	res := m.sessions(ctx).Where("id = ?", productID).Limit(1).Find(&product)
	if res.Error != nil {
		return false, fmt.Errorf("find product %s: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	if err := m.sessions(ctx).Delete(&product).Error; err != nil {
		return false, fmt.Errorf("delete product %s: %w", productID, err)
	}

	m.log.Debug("product deleted", "product_id", productID)
	return true, nil
}

func (m *CatalogManager) isExistingProduct(ctx context.Context, productName, categoryName string) (bool, error) {
	var products []Product
	res := m.sessions(ctx).
		Joins("Category").
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "name"}, Value: productName}).
		Where(clause.Eq{Column: clause.Column{Table: "Category", Name: "name"}, Value: categoryName}).
		Limit(1).
		Find(&products)
	if res.Error != nil {
		return false, fmt.Errorf("check existing product %q: %w", productName, res.Error)
	}
	return len(products) > 0, nil
}

// getCategoryID returns uuid.Nil when no category has the given name. If
// several do, the first one the store returns wins.
func (m *CatalogManager) getCategoryID(ctx context.Context, categoryName string) (uuid.UUID, error) {
	var categories []Category
	if err := m.sessions(ctx).Where("name = ?", categoryName).Limit(1).Find(&categories).Error; err != nil {
		return uuid.Nil, fmt.Errorf("find category %q: %w", categoryName, err)
	}
	if len(categories) == 0 {
		return uuid.Nil, nil
	}
	return categories[0].ID, nil
}

func (m *CatalogManager) createCategory(ctx context.Context, categoryName string) (uuid.UUID, error) {
	category := Category{
		ID:   uuid.New(),
		Name: categoryName,
	}
	if err := m.sessions(ctx).Create(&category).Error; err != nil {
		return uuid.Nil, fmt.Errorf("create category %q: %w", categoryName, err)
	}

	m.log.Debug("category created", "category_id", category.ID, "category", categoryName)
	return category.ID, nil
}
