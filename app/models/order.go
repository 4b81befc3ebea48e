package models

import "time"

// Order statuses. An order starts pending and is moved by admin action.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a storefront order received over the webhook.
//
// OrderID is the external identifier: generated once at creation, globally
// unique, and never changed afterwards. Total is caller-supplied and is
// not recomputed from the line items.
type Order struct {
	ID               uint       `gorm:"primaryKey"                json:"id"`
	OrderID          string     `gorm:"size:36;uniqueIndex;not null" json:"order_id"`
	Branch           string     `gorm:"size:100;not null"         json:"branch"`
	CustomerName     string     `gorm:"size:255;not null"         json:"customer_name"`
	CustomerPhone    string     `gorm:"size:50;not null"          json:"customer_phone"`
	CustomerLocation string     `gorm:"type:text;not null"        json:"customer_location"`
	Items            OrderItems `gorm:"type:text;not null"        json:"items"`
	Total            int        `gorm:"not null"                  json:"total"`
	Status           string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	Coordinates      JSONMap    `gorm:"type:text"                 json:"coordinates"`
	NotifiedAt       *time.Time `json:"notified_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
