package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/popays/backend/app/models"
	"github.com/popays/backend/pkg/storage"
)

// fileCatalog serves the catalogue from two JSON documents on a storage
// disk. Intended for small deployments that run without a database; the
// whole document is rewritten on every mutation, guarded by a mutex.
type fileCatalog struct {
	disk storage.Disk

	mu             sync.Mutex
	productsPath   string
	categoriesPath string
}

// NewFile builds the flat-file catalogue reading productsPath and
// categoriesPath from disk. Missing documents read as empty lists.
func NewFile(disk storage.Disk, productsPath, categoriesPath string) Catalog {
	return &fileCatalog{
		disk:           disk,
		productsPath:   productsPath,
		categoriesPath: categoriesPath,
	}
}

func (c *fileCatalog) readProducts() ([]models.Product, error) {
	if !c.disk.Exists(c.productsPath) {
		return nil, nil
	}
	data, err := c.disk.Get(c.productsPath)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", c.productsPath, err)
	}
	return products, nil
}

func (c *fileCatalog) writeProducts(products []models.Product) error {
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog: encode %s: %w", c.productsPath, err)
	}
	return c.disk.Put(c.productsPath, data)
}

func (c *fileCatalog) readCategories() ([]models.Category, error) {
	if !c.disk.Exists(c.categoriesPath) {
		return nil, nil
	}
	data, err := c.disk.Get(c.categoriesPath)
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", c.categoriesPath, err)
	}
	return categories, nil
}

func (c *fileCatalog) writeCategories(categories []models.Category) error {
	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return fmt.Errorf("catalog: encode %s: %w", c.categoriesPath, err)
	}
	return c.disk.Put(c.categoriesPath, data)
}

// nextProductID is max existing id + 1, so ids stay stable across
// deletes instead of being reused.
func nextProductID(products []models.Product) uint {
	var max uint
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

func nextCategoryID(categories []models.Category) uint {
	var max uint
	for _, cat := range categories {
		if cat.ID > max {
			max = cat.ID
		}
	}
	return max + 1
}

func (c *fileCatalog) Products(category string) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.readProducts()
	if err != nil {
		return nil, err
	}
	if category == "" {
		return products, nil
	}
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (c *fileCatalog) Product(id uint) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.readProducts()
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

func (c *fileCatalog) AddProduct(p *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.readProducts()
	if err != nil {
		return err
	}
	p.ID = nextProductID(products)
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return c.writeProducts(append(products, *p))
}

func (c *fileCatalog) UpdateProduct(p *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.readProducts()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == p.ID {
			p.CreatedAt = products[i].CreatedAt
			p.UpdatedAt = time.Now()
			products[i] = *p
			return c.writeProducts(products)
		}
	}
	return ErrNotFound
}

func (c *fileCatalog) DeleteProduct(id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.readProducts()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			products = append(products[:i], products[i+1:]...)
			return c.writeProducts(products)
		}
	}
	return ErrNotFound
}

func (c *fileCatalog) UpdateProductImage(id uint, img string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.readProducts()
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			products[i].Img = img
			products[i].UpdatedAt = time.Now()
			return c.writeProducts(products)
		}
	}
	return ErrNotFound
}

// Categories returns active categories sorted by display order then name,
// matching the relational backend.
func (c *fileCatalog) Categories() ([]models.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	categories, err := c.readCategories()
	if err != nil {
		return nil, err
	}
	active := make([]models.Category, 0, len(categories))
	for _, cat := range categories {
		if cat.IsActive {
			active = append(active, cat)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].DisplayOrder != active[j].DisplayOrder {
			return active[i].DisplayOrder < active[j].DisplayOrder
		}
		return active[i].Name < active[j].Name
	})
	return active, nil
}

func (c *fileCatalog) Category(id uint) (models.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	categories, err := c.readCategories()
	if err != nil {
		return models.Category{}, err
	}
	for _, cat := range categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return models.Category{}, ErrNotFound
}

func (c *fileCatalog) AddCategory(cat *models.Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	categories, err := c.readCategories()
	if err != nil {
		return err
	}
	cat.ID = nextCategoryID(categories)
	cat.IsActive = true
	cat.CreatedAt = time.Now()
	return c.writeCategories(append(categories, *cat))
}

func (c *fileCatalog) UpdateCategory(cat *models.Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	categories, err := c.readCategories()
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID == cat.ID {
			cat.CreatedAt = categories[i].CreatedAt
			categories[i] = *cat
			return c.writeCategories(categories)
		}
	}
	return ErrNotFound
}

// DeleteCategory clears the active flag; the record stays on disk.
func (c *fileCatalog) DeleteCategory(id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	categories, err := c.readCategories()
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID == id {
			categories[i].IsActive = false
			return c.writeCategories(categories)
		}
	}
	return ErrNotFound
}
