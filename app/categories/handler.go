package categories

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/app/logger"
	"github.com/mytheresa/product-catalog/app/metrics"
	"github.com/mytheresa/product-catalog/models"
)

type CategoryProvider interface {
	GetCategories(ctx context.Context) ([]models.CategoryView, error)
	GetProductsForCategory(ctx context.Context, categoryID uuid.UUID) ([]models.ProductView, error)
}

type CategoryHandler struct {
	repo CategoryProvider
	log  *logger.Logger
}

func NewCategoryHandler(r CategoryProvider, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, log: log.With("handler", "categories")}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.HandleGetAll)
		r.Get("/{categoryId}/products", h.HandleGetProducts)
	})
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetCategories(r.Context())
	if err != nil {
		h.log.Error("list categories failed", "error", err)
		metrics.Observe("get_categories", metrics.ResultError)
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	if categories == nil {
		h.log.Info("no categories found")
		metrics.Observe("get_categories", metrics.ResultAbsent)
		api.NoContentResponse(w)
		return
	}

	metrics.Observe("get_categories", metrics.ResultFound)
	api.OKResponse(w, categories)
}

func (h *CategoryHandler) HandleGetProducts(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryId"))
	if err != nil || categoryID == uuid.Nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	products, err := h.repo.GetProductsForCategory(r.Context(), categoryID)
	if err != nil {
		h.log.Error("list products for category failed", "category_id", categoryID, "error", err)
		metrics.Observe("get_products_for_category", metrics.ResultError)
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}

	if products == nil {
		h.log.Info("no products found for category", "category_id", categoryID)
		metrics.Observe("get_products_for_category", metrics.ResultAbsent)
		api.NoContentResponse(w)
		return
	}

	metrics.Observe("get_products_for_category", metrics.ResultFound)
	api.OKResponse(w, products)
}
