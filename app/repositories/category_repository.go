package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/popays/backend/app/models"
)

// CategoryRepository handles database operations for categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Active returns the non-disabled categories, sorted by display order
// then name.
func (r *CategoryRepository) Active() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("is_active = ?", true).
		Order("display_order, name").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("store: list categories: %w", err)
	}
	return categories, nil
}

// Create persists a new category.
func (r *CategoryRepository) Create(c *models.Category) error {
	if err := r.db.Create(c).Error; err != nil {
		return fmt.Errorf("store: create category: %w", err)
	}
	return nil
}

// Find looks up a category by id.
func (r *CategoryRepository) Find(id uint) (models.Category, error) {
	var c models.Category
	err := r.db.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c, ErrNotFound
	}
	if err != nil {
		return c, fmt.Errorf("store: find category %d: %w", id, err)
	}
	return c, nil
}

// Update persists changes to an existing category.
func (r *CategoryRepository) Update(c *models.Category) error {
	if err := r.db.Save(c).Error; err != nil {
		return fmt.Errorf("store: update category: %w", err)
	}
	return nil
}

// SoftDelete disables a category by clearing its active flag. Categories
// are never hard-deleted.
func (r *CategoryRepository) SoftDelete(id uint) error {
	res := r.db.Model(&models.Category{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("store: delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
