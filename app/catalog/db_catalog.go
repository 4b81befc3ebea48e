package catalog

import (
	"github.com/popays/backend/app/models"
	"github.com/popays/backend/app/repositories"
)

// dbCatalog serves the catalogue from the relational store.
type dbCatalog struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

// NewDB builds the database-backed catalogue.
func NewDB(products *repositories.ProductRepository, categories *repositories.CategoryRepository) Catalog {
	return &dbCatalog{products: products, categories: categories}
}

func (c *dbCatalog) Products(category string) ([]models.Product, error) {
	if category == "" {
		return c.products.All()
	}
	return c.products.ByCategory(category)
}

func (c *dbCatalog) Product(id uint) (models.Product, error) {
	return c.products.Find(id)
}

func (c *dbCatalog) AddProduct(p *models.Product) error {
	return c.products.Create(p)
}

func (c *dbCatalog) UpdateProduct(p *models.Product) error {
	if _, err := c.products.Find(p.ID); err != nil {
		return err
	}
	return c.products.Update(p)
}

func (c *dbCatalog) DeleteProduct(id uint) error {
	return c.products.Delete(id)
}

func (c *dbCatalog) UpdateProductImage(id uint, img string) error {
	return c.products.UpdateImage(id, img)
}

func (c *dbCatalog) Categories() ([]models.Category, error) {
	return c.categories.Active()
}

func (c *dbCatalog) Category(id uint) (models.Category, error) {
	return c.categories.Find(id)
}

func (c *dbCatalog) AddCategory(cat *models.Category) error {
	return c.categories.Create(cat)
}

func (c *dbCatalog) UpdateCategory(cat *models.Category) error {
	if _, err := c.categories.Find(cat.ID); err != nil {
		return err
	}
	return c.categories.Update(cat)
}

func (c *dbCatalog) DeleteCategory(id uint) error {
	return c.categories.SoftDelete(id)
}
