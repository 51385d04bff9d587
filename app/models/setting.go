package models

import (
	"time"
)

// Setting is a generic typed key-value row. Larger configuration documents
// (the provider registry, the panel config) are stored as JSON in Value.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key" validate:"required,min=1,max=255"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type" validate:"required"` // string, boolean, integer, float, json
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known setting keys used by the catalog pipeline.
const (
	SettingKeyProviders   = "smm_providers"
	SettingKeyPanelConfig = "panel_config"
)
