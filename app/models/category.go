package models

import "time"

// Category groups products for the storefront menu. Categories are never
// hard-deleted; the active flag soft-disables them instead.
type Category struct {
	ID           uint      `gorm:"primaryKey"              json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"type:text"               json:"description"`
	DisplayOrder int       `gorm:"not null;default:0"      json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true"   json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
