// Package catalog exposes the product catalogue behind a single
// interface with two interchangeable backends: the relational store
// (default) and a flat-file store for deployments without a database.
package catalog

import (
	"github.com/popays/backend/app/models"
	"github.com/popays/backend/app/repositories"
)

// ErrNotFound is returned when a product or category does not exist.
// It aliases the store error so both backends report the same value.
var ErrNotFound = repositories.ErrNotFound

// Catalog is the storefront catalogue. Category deletes are soft
// (the category is disabled, its products keep their tag); product
// deletes are hard.
type Catalog interface {
	Products(category string) ([]models.Product, error)
	Product(id uint) (models.Product, error)
	AddProduct(p *models.Product) error
	UpdateProduct(p *models.Product) error
	DeleteProduct(id uint) error
	UpdateProductImage(id uint, img string) error

	Categories() ([]models.Category, error)
	Category(id uint) (models.Category, error)
	AddCategory(c *models.Category) error
	UpdateCategory(c *models.Category) error
	DeleteCategory(id uint) error
}
