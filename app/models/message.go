package models

import "time"

// Contact message statuses.
const (
	MessageStatusNew     = "new"
	MessageStatusRead    = "read"
	MessageStatusReplied = "replied"
)

// ContactMessage is a customer message submitted from the storefront
// contact form. Email is optional.
type ContactMessage struct {
	ID            uint       `gorm:"primaryKey"        json:"id"`
	CustomerName  string     `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone string     `gorm:"size:50;not null"  json:"customer_phone"`
	CustomerEmail string     `gorm:"size:255"          json:"customer_email"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	Status        string     `gorm:"size:20;not null;default:new;index" json:"status"`
	NotifiedAt    *time.Time `json:"notified_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
