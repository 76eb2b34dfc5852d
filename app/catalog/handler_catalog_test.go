package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mytheresa/product-catalog/app/logger"
	"github.com/mytheresa/product-catalog/models"
	"github.com/stretchr/testify/assert"
)

// --- Mock Repo ---

type MockProductRepo struct {
	SourceProducts []models.ProductView
	CreatedID      uuid.UUID
	Deleted        bool
	Err            error

	// Fields to capture call arguments
	createCalled       bool
	lastCreateName     string
	lastCreateDesc     string
	lastCreateCategory string
	lastDeletedID      uuid.UUID
}

func (m *MockProductRepo) CreateProduct(_ context.Context, name, description, category string) (uuid.UUID, error) {
	m.createCalled = true
	m.lastCreateName = name
	m.lastCreateDesc = description
	m.lastCreateCategory = category

	if m.Err != nil {
		return uuid.Nil, m.Err
	}
	return m.CreatedID, nil
}

func (m *MockProductRepo) GetProducts(_ context.Context) ([]models.ProductView, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SourceProducts, nil
}

func (m *MockProductRepo) DeleteProduct(_ context.Context, id uuid.UUID) (bool, error) {
	m.lastDeletedID = id
	if m.Err != nil {
		return false, m.Err
	}
	return m.Deleted, nil
}

// --- Helpers ---

func newTestProduct(name, description, categoryName string) models.ProductView {
	return models.ProductView{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Category: models.CategoryView{
			ID:   uuid.New(),
			Name: categoryName,
		},
	}
}

// --- Tests: GET /api/products ---

func TestHandleGet(t *testing.T) {
	allMockProducts := []models.ProductView{
		newTestProduct("Mojito", "mint and lime cocktail", "Cocktails"),
		newTestProduct("Stout", "dark roasted ale", "Beers"),
	}

	testCases := []struct {
		name               string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success with products",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []models.ProductView
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, allMockProducts, resp)
			},
		},
		{
			name: "No products gives no content",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusNoContent,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Empty(t, rec.Body.String())
			},
		},
		{
			name: "Repository error",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "failed to get products", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCatalogHandler(mockRepo, logger.NewNop())
			req := httptest.NewRequest("GET", "/api/products", nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGet(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

// --- Tests: POST /api/products ---

func TestHandleCreate(t *testing.T) {
	newID := uuid.New()

	testCases := []struct {
		name               string
		requestBody        string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name:        "Success",
			requestBody: `{"name":"Mojito","description":"mint and lime cocktail","category":"Cocktails"}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{CreatedID: newID}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp CreateProductResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, newID, resp.ID)
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "Mojito", repo.lastCreateName)
				assert.Equal(t, "mint and lime cocktail", repo.lastCreateDesc)
				assert.Equal(t, "Cocktails", repo.lastCreateCategory)
			},
		},
		{
			name:        "Duplicate returns the nil id",
			requestBody: `{"name":"Mojito","description":"mint and lime cocktail","category":"Cocktails"}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{CreatedID: uuid.Nil}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp CreateProductResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, uuid.Nil, resp.ID)
			},
		},
		{
			name:        "Invalid JSON body",
			requestBody: `{invalid json`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Invalid JSON body", errResp["error"])
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.False(t, repo.createCalled, "CreateProduct should not be called with invalid JSON")
			},
		},
		{
			name:        "Missing description",
			requestBody: `{"name":"Mojito","category":"Cocktails"}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Missing name, description or category", errResp["error"])
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.False(t, repo.createCalled, "CreateProduct should not be called with missing fields")
			},
		},
		{
			name:        "Empty category",
			requestBody: `{"name":"Mojito","description":"mint and lime cocktail","category":""}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.False(t, repo.createCalled)
			},
		},
		{
			name:        "Repository error on create",
			requestBody: `{"name":"Mojito","description":"mint and lime cocktail","category":"Cocktails"}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("insert failed")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Failed to create product", errResp["error"])
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.True(t, repo.createCalled, "CreateProduct should have been called")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCatalogHandler(mockRepo, logger.NewNop())
			req := httptest.NewRequest("POST", "/api/products", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}
