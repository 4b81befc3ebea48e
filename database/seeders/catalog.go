package seeders

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/popays/backend/app/models"
	"github.com/popays/backend/app/repositories"
)

func init() {
	Register("categories", SeedCategories)
	Register("products", SeedProducts)
	Register("admin_settings", SeedAdminSettings)
}

// SeedCategories inserts the default menu categories. Existing names
// are left untouched, so reseeding is safe.
func SeedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "hotdog", Description: "HotDog mahsulotlari", DisplayOrder: 1, IsActive: true},
		{Name: "burger", Description: "Burger mahsulotlari", DisplayOrder: 2, IsActive: true},
		{Name: "lavash", Description: "Lavash va Shaurma mahsulotlari", DisplayOrder: 3, IsActive: true},
		{Name: "sides", Description: "Snacks va qo'shimcha taomlar", DisplayOrder: 4, IsActive: true},
		{Name: "drinks", Description: "Ichimliklar", DisplayOrder: 5, IsActive: true},
		{Name: "combo", Description: "Combo taomlar", DisplayOrder: 6, IsActive: true},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error
}

// SeedProducts inserts the default menu. Skipped entirely when any
// product already exists, so live catalogues are never overwritten.
func SeedProducts(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Oddiy HotDog", Price: 8000, Category: "hotdog", Stock: 150, Description: "Oddiy hotdog - klassik ta'm va soddalik"},
		{Name: "HotDog dvaynoy", Price: 11000, Category: "hotdog", Stock: 150, Description: "Ikki xil kolbasa bilan tayyorlangan hotdog"},
		{Name: "HotDog kanatskiy", Price: 12000, Category: "hotdog", Stock: 150, Description: "Kanatskiy kolbasa bilan tayyorlangan hotdog"},
		{Name: "HotDog kanatskiy dvaynoy", Price: 15000, Category: "hotdog", Stock: 150, Description: "Ikki xil kanatskiy kolbasa bilan tayyorlangan hotdog"},
		{Name: "Go'shtli HotDog", Price: 25000, Category: "hotdog", Stock: 150, Description: "Go'shtli kolbasa bilan tayyorlangan hotdog"},
		{Name: "Longer", Price: 20000, Category: "hotdog", Stock: 150, Description: "Uzun hotdog - katta hajm va to'yingan ta'm"},
		{Name: "Longer Cheese", Price: 24000, Category: "hotdog", Stock: 150, Description: "Uzun hotdog pishloq bilan"},
		{Name: "BBQ burger", Price: 25000, Category: "burger", Stock: 150, Description: "BBQ sousi bilan tayyorlangan burger"},
		{Name: "Cheese burger", Price: 30000, Category: "burger", Stock: 150, Description: "Pishloq bilan tayyorlangan burger"},
		{Name: "BBQ burger halapeno", Price: 30000, Category: "burger", Stock: 150, Description: "BBQ sousi va halapeno bilan tayyorlangan burger"},
		{Name: "BBQ double burger", Price: 37000, Category: "burger", Stock: 150, Description: "Ikki xil go'sht va BBQ sousi bilan tayyorlangan burger"},
		{Name: "Double Cheese burger", Price: 45000, Category: "burger", Stock: 150, Description: "Ikki xil pishloq bilan tayyorlangan burger"},
		{Name: "Chicken Burger", Price: 23000, Category: "burger", Stock: 150, Description: "Tovuq go'shti bilan tayyorlangan burger"},
		{Name: "Chicken cheese", Price: 28000, Category: "burger", Stock: 150, Description: "Tovuq go'shti va pishloq bilan tayyorlangan burger"},
		{Name: "Oddiy Lavash", Price: 28000, Category: "lavash", Stock: 150, Description: "Oddiy lavash - klassik ta'm va soddalik"},
		{Name: "Extra Lavash", Price: 33000, Category: "lavash", Stock: 150, Description: "Qo'shimcha ingredientlar bilan tayyorlangan lavash"},
		{Name: "Cheese Lavash", Price: 28000, Category: "lavash", Stock: 150, Description: "Pishloq bilan tayyorlangan lavash"},
		{Name: "Extra cheese Lavash", Price: 38000, Category: "lavash", Stock: 150, Description: "Qo'shimcha pishloq bilan tayyorlangan lavash"},
		{Name: "Shaurma", Price: 20000, Category: "lavash", Stock: 150, Description: "Klassik shaurma - oddiy va mazali"},
		{Name: "Shaurma cheese", Price: 33000, Category: "lavash", Stock: 150, Description: "Pishloq bilan tayyorlangan shaurma"},
		{Name: "Shaurma extra", Price: 33000, Category: "lavash", Stock: 150, Description: "Qo'shimcha ingredientlar bilan tayyorlangan shaurma"},
		{Name: "Shaurma extra cheese", Price: 38000, Category: "lavash", Stock: 150, Description: "Qo'shimcha pishloq va ingredientlar bilan tayyorlangan shaurma"},
		{Name: "Twister Classic", Price: 25000, Category: "lavash", Stock: 150, Description: "Klassik twister - oddiy va mazali"},
		{Name: "Twister Cheese", Price: 30000, Category: "lavash", Stock: 150, Description: "Pishloq bilan tayyorlangan twister"},
		{Name: "Twister Spicy", Price: 28000, Category: "lavash", Stock: 150, Description: "Achchiq ta'mli twister"},
		{Name: "Strips", Price: 30000, Category: "sides", Stock: 150, Description: "Tovuq strips - qovurilgan tovuq bo'laklari"},
		{Name: "Fri", Price: 12000, Category: "sides", Stock: 150, Description: "Qovurilgan kartoshka - klassik ta'm"},
		{Name: "Suv", Price: 3000, Category: "drinks", Stock: 150, Description: "Toza suv - 0.5L"},
		{Name: "Combo Pizza Margherita", Price: 45000, Category: "combo", Stock: 150, Description: "Pizza Margherita + ichimlik + fri"},
		{Name: "Combo Pizza Pepperoni", Price: 50000, Category: "combo", Stock: 150, Description: "Pizza Pepperoni + ichimlik + fri"},
		{Name: "Combo Burger", Price: 35000, Category: "combo", Stock: 150, Description: "Burger + ichimlik + fri"},
		{Name: "Combo HotDog", Price: 25000, Category: "combo", Stock: 150, Description: "HotDog + ichimlik + fri"},
		{Name: "Combo Lavash", Price: 40000, Category: "combo", Stock: 150, Description: "Lavash + ichimlik + fri"},
	}
	return db.Create(&products).Error
}

// SeedAdminSettings upserts the default settings key/value pairs
// through the settings repository, so the upsert semantics live in one
// place.
func SeedAdminSettings(db *gorm.DB) error {
	settings := repositories.NewSettingRepository(db)
	for key, value := range map[string]string{
		"restaurant_name":      "Popays Fast Food",
		"min_order_amount":     "100000",
		"free_delivery_amount": "50000",
		"working_hours":        "24/7",
		"contact_phone":        "+998 91 269 00 02",
	} {
		if err := settings.Set(key, value); err != nil {
			return err
		}
	}
	return nil
}
