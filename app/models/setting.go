package models

import "time"

// AdminSetting is a key/value pair with upsert semantics.
type AdminSetting struct {
	ID        uint      `gorm:"primaryKey"                  json:"id"`
	Key       string    `gorm:"column:key;size:100;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"type:text;not null"          json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdminSetting) TableName() string { return "admin_settings" }
