package models

import "github.com/google/uuid"

// CategoryView is the externally visible shape of a Category.
type CategoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductView is the externally visible shape of a Product, with its
// category inlined instead of the foreign key.
type ProductView struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    CategoryView `json:"category"`
}

func toCategoryView(c Category) CategoryView {
	return CategoryView{
		ID:   c.ID,
		Name: c.Name,
	}
}

func toProductView(p Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    toCategoryView(p.Category),
	}
}

// toCategoryViews returns nil for an empty input so that "no data" stays
// distinguishable from a populated list.
func toCategoryViews(categories []Category) []CategoryView {
	if len(categories) == 0 {
		return nil
	}
	views := make([]CategoryView, len(categories))
	for i, c := range categories {
		views[i] = toCategoryView(c)
	}
	return views
}

func toProductViews(products []Product) []ProductView {
	if len(products) == 0 {
		return nil
	}
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = toProductView(p)
	}
	return views
}
