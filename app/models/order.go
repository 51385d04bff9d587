package models

import (
	"time"
)

const (
	ORDER_STATUS_PENDING   = "pending"
	ORDER_STATUS_SUBMITTED = "submitted"
	ORDER_STATUS_FAILED    = "failed"
)

// Order is one storefront purchase of a catalog service. ServiceID is the
// composite catalog id (providerKey:sourceServiceId); ChargeUSD is the final
// storefront price at order time, after margins and overrides.
type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index" json:"user_id"`
	ServiceID       string    `gorm:"size:128;not null;index" json:"service_id"`
	Source          string    `gorm:"size:64;not null" json:"source"`
	Link            string    `gorm:"size:2048;not null" json:"link"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	ChargeUSD       float64   `gorm:"not null" json:"charge_usd"`
	Status          string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	ProviderOrderID string    `gorm:"size:64" json:"provider_order_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
