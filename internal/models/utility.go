package models

import (
	"time"

	"gorm.io/gorm"
)

// Bank is a settlement bank record served by the utility module.
type Bank struct {
	gorm.Model
	Name string `json:"name" binding:"required"`
	Code string `json:"code" gorm:"uniqueIndex"`
}

// Vehicle is a registered delivery vehicle.
// gorm.Model is inlined here because its embedded field name collides
// with the Model column.
type Vehicle struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	Model       string         `json:"model"`
	Make        string         `json:"make"`
	NumberPlate string         `json:"numberPlate" gorm:"uniqueIndex"`
	Color       string         `json:"color"`
	DriverID    uint           `json:"driver_id" gorm:"index"`
}

// Inventory is a distributor catalog item.
type Inventory struct {
	gorm.Model
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Brand         string  `json:"brand"`
	DistributorID uint    `json:"distributor_id" gorm:"index"`
	Visible       bool    `json:"visible" gorm:"default:true"`
}
