package repositories

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/popays/backend/app/models"
	"github.com/popays/backend/pkg/database"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect("sqlite", filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Order{}, &models.ContactMessage{},
		&models.Product{}, &models.Category{}, &models.AdminSetting{},
	))
	return db
}

func sampleOrder() *models.Order {
	return &models.Order{
		Branch:           "kosmonavt",
		CustomerName:     "Aziz",
		CustomerPhone:    "+998901234567",
		CustomerLocation: "Chilonzor 9",
		Items:            models.OrderItems{{Name: "Chizburger", Quantity: 2, Total: 56000}},
		Total:            56000,
	}
}

func TestOrderCreateAssignsUniqueExternalIDs(t *testing.T) {
	repo := NewOrderRepository(testDB(t))

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		o := sampleOrder()
		require.NoError(t, repo.Create(o))
		require.NotEmpty(t, o.OrderID)
		assert.False(t, seen[o.OrderID], "external id reused: %s", o.OrderID)
		seen[o.OrderID] = true
		assert.Equal(t, models.OrderStatusPending, o.Status)
	}
}

func TestOrderListFiltersByStatusNewestFirst(t *testing.T) {
	repo := NewOrderRepository(testDB(t))

	var ids []string
	for i := 0; i < 3; i++ {
		o := sampleOrder()
		require.NoError(t, repo.Create(o))
		ids = append(ids, o.OrderID)
	}
	require.NoError(t, repo.UpdateStatus(ids[1], models.OrderStatusCompleted))

	pending, err := repo.List(models.OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// Newest first.
	assert.Equal(t, ids[2], pending[0].OrderID)
	assert.Equal(t, ids[0], pending[1].OrderID)

	completed, err := repo.List(models.OrderStatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, ids[1], completed[0].OrderID)

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderUpdateStatusMissing(t *testing.T) {
	repo := NewOrderRepository(testDB(t))
	assert.ErrorIs(t, repo.UpdateStatus("no-such-id", models.OrderStatusCompleted), ErrNotFound)
}

func TestOrderItemsRoundTrip(t *testing.T) {
	repo := NewOrderRepository(testDB(t))

	o := sampleOrder()
	o.Coordinates = models.JSONMap{"lat": 41.31, "lng": 69.25}
	require.NoError(t, repo.Create(o))

	got, err := repo.FindByOrderID(o.OrderID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Chizburger", got.Items[0].Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.NotNil(t, got.Coordinates["lat"])
}

func TestOrderMarkNotified(t *testing.T) {
	repo := NewOrderRepository(testDB(t))

	o := sampleOrder()
	require.NoError(t, repo.Create(o))

	unnotified, err := repo.Unnotified()
	require.NoError(t, err)
	require.Len(t, unnotified, 1)

	require.NoError(t, repo.MarkNotified(o.ID, time.Now()))
	unnotified, err = repo.Unnotified()
	require.NoError(t, err)
	assert.Empty(t, unnotified)
}

func TestMessageStatusTransitions(t *testing.T) {
	repo := NewMessageRepository(testDB(t))

	m := &models.ContactMessage{CustomerName: "Dilnoza", CustomerPhone: "+998935551122", Message: "Salom"}
	require.NoError(t, repo.Create(m))
	assert.Equal(t, models.MessageStatusNew, m.Status)

	require.NoError(t, repo.UpdateStatus(m.ID, models.MessageStatusRead))
	read, err := repo.List(models.MessageStatusRead)
	require.NoError(t, err)
	require.Len(t, read, 1)

	n, err := repo.CountByStatus(models.MessageStatusNew)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, repo.UpdateStatus(9999, models.MessageStatusRead), ErrNotFound)
}

func TestCategoryActiveSortAndSoftDelete(t *testing.T) {
	repo := NewCategoryRepository(testDB(t))

	for _, c := range []models.Category{
		{Name: "drinks", DisplayOrder: 5, IsActive: true},
		{Name: "hotdog", DisplayOrder: 1, IsActive: true},
		{Name: "burger", DisplayOrder: 2, IsActive: true},
	} {
		cat := c
		require.NoError(t, repo.Create(&cat))
	}

	active, err := repo.Active()
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "hotdog", active[0].Name)
	assert.Equal(t, "burger", active[1].Name)

	require.NoError(t, repo.SoftDelete(active[0].ID))
	active, err = repo.Active()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "burger", active[0].Name)

	// Row still exists, only disabled.
	cat, err := repo.Find(1)
	require.NoError(t, err)
	assert.False(t, cat.IsActive)

	assert.ErrorIs(t, repo.SoftDelete(9999), ErrNotFound)
}

func TestProductHardDelete(t *testing.T) {
	repo := NewProductRepository(testDB(t))

	p := &models.Product{Name: "Fri", Price: 12000, Category: "sides", Stock: 150}
	require.NoError(t, repo.Create(p))

	require.NoError(t, repo.Delete(p.ID))
	_, err := repo.Find(p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(p.ID), ErrNotFound)
}

func TestSettingUpsert(t *testing.T) {
	repo := NewSettingRepository(testDB(t))

	require.NoError(t, repo.Set("working_hours", "24/7"))
	require.NoError(t, repo.Set("working_hours", "09:00-23:00"))

	v, err := repo.Get("working_hours")
	require.NoError(t, err)
	assert.Equal(t, "09:00-23:00", v)

	_, err = repo.Get("missing_key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMigrateTwiceIsIdempotent(t *testing.T) {
	db := testDB(t)
	// Re-running the schema build must not fail or duplicate anything.
	require.NoError(t, db.AutoMigrate(
		&models.Order{}, &models.ContactMessage{},
		&models.Product{}, &models.Category{}, &models.AdminSetting{},
	))

	repo := NewOrderRepository(db)
	require.NoError(t, repo.Create(sampleOrder()))
	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
