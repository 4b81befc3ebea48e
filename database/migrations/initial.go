package migrations

import (
	"gorm.io/gorm"

	"github.com/popays/backend/app/models"
	"github.com/popays/backend/pkg/migration"
)

func init() {
	createTable("20260110000000_create_orders_table", &models.Order{}, "orders")
	createTable("20260110000001_create_contact_messages_table", &models.ContactMessage{}, "contact_messages")
	createTable("20260110000002_create_products_table", &models.Product{}, "products")
	createTable("20260110000003_create_categories_table", &models.Category{}, "categories")
	createTable("20260110000004_create_admin_settings_table", &models.AdminSetting{}, "admin_settings")
}

// createTable registers a migration that builds the model's table on the
// way up and drops it on the way down.
func createTable(name string, model interface{}, table string) {
	migration.Register(migration.Migration{
		Name: name,
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(model)
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable(table)
		},
	})
}
