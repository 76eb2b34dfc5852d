package catalog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/app/logger"
	"github.com/mytheresa/product-catalog/app/metrics"
	"github.com/mytheresa/product-catalog/models"
)

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

// CreateProductResponse carries the new product id, or the nil UUID when
// the product already existed in that category.
type CreateProductResponse struct {
	ID uuid.UUID `json:"id"`
}

type DeleteProductResponse struct {
	Deleted bool `json:"deleted"`
}

type ProductProvider interface {
	CreateProduct(ctx context.Context, productName, productDescription, categoryName string) (uuid.UUID, error)
	GetProducts(ctx context.Context) ([]models.ProductView, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}

type CatalogHandler struct {
	repo     ProductProvider
	log      *logger.Logger
	validate *validator.Validate
}

func NewCatalogHandler(r ProductProvider, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo:     r,
		log:      log.With("handler", "catalog"),
		validate: validator.New(),
	}
}

func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Post("/", h.HandleCreate)
		r.Delete("/{productId}", h.HandleDelete)
	})
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validate.Struct(input); err != nil {
		h.log.Info("invalid create request", "error", err)
		api.ErrorResponse(w, http.StatusBadRequest, "Missing name, description or category")
		return
	}

	id, err := h.repo.CreateProduct(r.Context(), input.Name, input.Description, input.Category)
	if err != nil {
		h.log.Error("create product failed", "error", err)
		metrics.Observe("create_product", metrics.ResultError)
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	if id == uuid.Nil {
		metrics.Observe("create_product", metrics.ResultDuplicate)
	} else {
		metrics.Observe("create_product", metrics.ResultCreated)
	}
	api.OKResponse(w, CreateProductResponse{ID: id})
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetProducts(r.Context())
	if err != nil {
		h.log.Error("list products failed", "error", err)
		metrics.Observe("get_products", metrics.ResultError)
		api.ErrorResponse(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	if products == nil {
		h.log.Info("no products found")
		metrics.Observe("get_products", metrics.ResultAbsent)
		api.NoContentResponse(w)
		return
	}

	metrics.Observe("get_products", metrics.ResultFound)
	api.OKResponse(w, products)
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil || id == uuid.Nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	deleted, err := h.repo.DeleteProduct(r.Context(), id)
	if err != nil {
		h.log.Error("delete product failed", "product_id", id, "error", err)
		metrics.Observe("delete_product", metrics.ResultError)
		api.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	if deleted {
		metrics.Observe("delete_product", metrics.ResultDeleted)
	} else {
		metrics.Observe("delete_product", metrics.ResultNotFound)
	}
	api.OKResponse(w, DeleteProductResponse{Deleted: deleted})
}
