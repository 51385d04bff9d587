package repository

import (
	"github.com/boostgridhq/BoostGrid/app/models"
)

// SettingRepository defines the interface for setting-related database operations
type SettingRepository interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Order, error)
	UpdateStatus(id uint, status, providerOrderID string) error
	List(offset, limit int) ([]models.Order, error)
	Count() (int64, error)
}
