package models

import "time"

// Product is a catalogue item. Prices are whole units of the smallest
// denomination the storefront displays (so'm), never fractional.
type Product struct {
	ID          uint      `gorm:"primaryKey"              json:"id"`
	Name        string    `gorm:"size:255;not null"       json:"name"`
	Price       int       `gorm:"not null"                json:"price"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	Stock       int       `gorm:"not null;default:0"      json:"stock"`
	Description string    `gorm:"type:text"               json:"description"`
	Img         string    `gorm:"size:500"                json:"img"`
	Badge       string    `gorm:"size:100"                json:"badge,omitempty"`
	Sizes       RawJSON   `gorm:"type:text"               json:"sizes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
