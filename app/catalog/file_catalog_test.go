package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popays/backend/app/models"
	"github.com/popays/backend/pkg/storage"
)

func newFileCatalog(t *testing.T) Catalog {
	t.Helper()
	m, err := storage.NewManager(storage.Options{LocalRoot: t.TempDir()})
	require.NoError(t, err)
	return NewFile(m.Default(), "data/products.json", "data/categories.json")
}

func TestFileCatalogEmptyReads(t *testing.T) {
	c := newFileCatalog(t)

	products, err := c.Products("")
	require.NoError(t, err)
	assert.Empty(t, products)

	categories, err := c.Categories()
	require.NoError(t, err)
	assert.Empty(t, categories)

	_, err = c.Product(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileCatalogProductLifecycle(t *testing.T) {
	c := newFileCatalog(t)

	burger := &models.Product{Name: "Chizburger", Price: 28000, Category: "burgers", Stock: 50}
	require.NoError(t, c.AddProduct(burger))
	assert.Equal(t, uint(1), burger.ID)

	cola := &models.Product{Name: "Cola", Price: 12000, Category: "drinks", Stock: 100}
	require.NoError(t, c.AddProduct(cola))
	assert.Equal(t, uint(2), cola.ID)

	drinks, err := c.Products("drinks")
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "Cola", drinks[0].Name)

	burger.Price = 30000
	require.NoError(t, c.UpdateProduct(burger))
	got, err := c.Product(burger.ID)
	require.NoError(t, err)
	assert.Equal(t, 30000, got.Price)

	require.NoError(t, c.DeleteProduct(burger.ID))
	_, err = c.Product(burger.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Ids never shrink back after a delete.
	fries := &models.Product{Name: "Fri", Price: 15000, Category: "sides"}
	require.NoError(t, c.AddProduct(fries))
	assert.Equal(t, uint(3), fries.ID)
}

func TestFileCatalogUpdateMissingProduct(t *testing.T) {
	c := newFileCatalog(t)

	err := c.UpdateProduct(&models.Product{ID: 9999, Name: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, c.DeleteProduct(9999), ErrNotFound)
	assert.ErrorIs(t, c.UpdateProductImage(9999, "x.png"), ErrNotFound)
}

func TestFileCatalogCategorySoftDelete(t *testing.T) {
	c := newFileCatalog(t)

	require.NoError(t, c.AddCategory(&models.Category{Name: "burgers", DisplayOrder: 2}))
	require.NoError(t, c.AddCategory(&models.Category{Name: "drinks", DisplayOrder: 1}))

	categories, err := c.Categories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	// Sorted by display order.
	assert.Equal(t, "drinks", categories[0].Name)

	require.NoError(t, c.DeleteCategory(categories[0].ID))

	categories, err = c.Categories()
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "burgers", categories[0].Name)

	// Disabled, not gone: the id is still taken.
	sides := &models.Category{Name: "sides", DisplayOrder: 3}
	require.NoError(t, c.AddCategory(sides))
	assert.Equal(t, uint(3), sides.ID)
}

func TestFileCatalogUpdateProductImage(t *testing.T) {
	c := newFileCatalog(t)

	p := &models.Product{Name: "Lavash", Price: 25000, Category: "wraps"}
	require.NoError(t, c.AddProduct(p))

	require.NoError(t, c.UpdateProductImage(p.ID, "uploads/lavash.png"))
	got, err := c.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "uploads/lavash.png", got.Img)
}
