package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/popays/backend/app/catalog"
	"github.com/popays/backend/app/models"
	"github.com/popays/backend/pkg/logger"
	"github.com/popays/backend/pkg/response"
)

// CatalogController serves the storefront catalogue API. It is backend
// agnostic: the wire format is identical for the relational and the
// flat-file catalogue.
type CatalogController struct {
	catalog catalog.Catalog
}

func NewCatalogController(cat catalog.Catalog) *CatalogController {
	return &CatalogController{catalog: cat}
}

// ListCategories handles GET /api/categories.
func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalog.Categories()
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	response.Success(w, categories)
}

// CreateCategory handles POST /api/categories.
func (c *CatalogController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.Name == "" {
		response.Error(w, http.StatusBadRequest, "Missing required field: name")
		return
	}

	cat := &models.Category{
		Name:         in.Name,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		IsActive:     true,
	}
	if err := c.catalog.AddCategory(cat); err != nil {
		c.serverError(w, r, err)
		return
	}
	response.Created(w, cat)
}

// UpdateCategory handles PUT /api/categories/{id}. Absent fields keep
// their stored value.
func (c *CatalogController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in struct {
		Name         *string `json:"name"`
		Description  *string `json:"description"`
		DisplayOrder *int    `json:"display_order"`
		IsActive     *bool   `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cat, err := c.catalog.Category(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		c.serverError(w, r, err)
		return
	}

	if in.Name != nil {
		cat.Name = *in.Name
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
	if in.DisplayOrder != nil {
		cat.DisplayOrder = *in.DisplayOrder
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}

	if err := c.catalog.UpdateCategory(&cat); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		c.serverError(w, r, err)
		return
	}
	response.Success(w, cat)
}

// DeleteCategory handles DELETE /api/categories/{id} (soft delete).
func (c *CatalogController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.catalog.DeleteCategory(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.NotFound(w, "Category not found")
			return
		}
		c.serverError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "Category deleted successfully"})
}

// ListProducts handles GET /api/products. An optional ?category= filter
// narrows the list.
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalog.Products(r.URL.Query().Get("category"))
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	response.Success(w, products)
}

// CreateProduct handles POST /api/products.
func (c *CatalogController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name        string  `json:"name"`
		Price       *int    `json:"price"`
		Category    string  `json:"category"`
		Stock       int     `json:"stock"`
		Description string  `json:"description"`
		Img         string  `json:"img"`
		Badge       string  `json:"badge"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch {
	case in.Name == "":
		response.Error(w, http.StatusBadRequest, "Missing required field: name")
		return
	case in.Price == nil:
		response.Error(w, http.StatusBadRequest, "Missing required field: price")
		return
	case in.Category == "":
		response.Error(w, http.StatusBadRequest, "Missing required field: category")
		return
	}

	p := &models.Product{
		Name:        in.Name,
		Price:       *in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		Description: in.Description,
		Img:         in.Img,
		Badge:       in.Badge,
	}
	if err := c.catalog.AddProduct(p); err != nil {
		c.serverError(w, r, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"success":    true,
		"message":    "Product added successfully",
		"product_id": p.ID,
	})
}

// UpdateProduct handles PUT /api/products/{id}. Absent fields keep
// their stored value; returns the updated row.
func (c *CatalogController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in struct {
		Name        *string `json:"name"`
		Price       *int    `json:"price"`
		Category    *string `json:"category"`
		Stock       *int    `json:"stock"`
		Description *string `json:"description"`
		Img         *string `json:"img"`
		Badge       *string `json:"badge"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := c.catalog.Product(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		c.serverError(w, r, err)
		return
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Img != nil {
		p.Img = *in.Img
	}
	if in.Badge != nil {
		p.Badge = *in.Badge
	}

	if err := c.catalog.UpdateProduct(&p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		c.serverError(w, r, err)
		return
	}
	response.Success(w, p)
}

// DeleteProduct handles DELETE /api/products/{id} (hard delete).
func (c *CatalogController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.catalog.DeleteProduct(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		c.serverError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "Product deleted successfully"})
}

// UpdateProductImage handles PUT /api/products/{id}/image.
func (c *CatalogController) UpdateProductImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in struct {
		ImagePath string `json:"image_path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if in.ImagePath == "" {
		response.Error(w, http.StatusBadRequest, "Missing required field: image_path")
		return
	}

	if err := c.catalog.UpdateProductImage(id, in.ImagePath); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		c.serverError(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"success": true,
		"message": "Product image updated successfully",
	})
}

func (c *CatalogController) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.WithCtx(r.Context()).Error("catalog request failed", "error", err)
	response.Error(w, http.StatusInternalServerError, err.Error())
}

// pathID parses the {id} segment; a non-numeric id is reported as 400.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, fmt.Sprintf("Invalid id: %s", raw))
		return 0, false
	}
	return uint(id), true
}
