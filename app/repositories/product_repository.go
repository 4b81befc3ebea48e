package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/popays/backend/app/models"
)

// ProductRepository handles database operations for products.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create persists a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	if err := r.db.Create(p).Error; err != nil {
		return fmt.Errorf("store: create product: %w", err)
	}
	return nil
}

// All returns every product in insertion order.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("store: list products: %w", err)
	}
	return products, nil
}

// ByCategory returns products with the given category tag, in insertion order.
func (r *ProductRepository) ByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("category = ?", category).Order("id").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("store: list products by category: %w", err)
	}
	return products, nil
}

// Find looks up a product by id.
func (r *ProductRepository) Find(id uint) (models.Product, error) {
	var p models.Product
	err := r.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("store: find product %d: %w", id, err)
	}
	return p, nil
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(p *models.Product) error {
	if err := r.db.Save(p).Error; err != nil {
		return fmt.Errorf("store: update product: %w", err)
	}
	return nil
}

// Delete hard-deletes a product.
func (r *ProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("store: delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateImage sets the image reference of a product.
func (r *ProductRepository) UpdateImage(id uint, imagePath string) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("img", imagePath)
	if res.Error != nil {
		return fmt.Errorf("store: update product image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of products.
func (r *ProductRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("store: count products: %w", err)
	}
	return n, nil
}
