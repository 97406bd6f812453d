package models

import "time"

// Category groups devices by kind (laptops, monitors, ...)
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Brand represents a device manufacturer
type Brand struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Country   *string   `json:"country"`
	Website   *string   `json:"website"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Brand model
func (Brand) TableName() string {
	return "brands"
}

// Location types
const (
	LocationTypeWarehouse = "WAREHOUSE"
	LocationTypeOffice    = "OFFICE"
	LocationTypeStorage   = "STORAGE"
)

// Location is a physical place where devices are kept
type Location struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	LocationType string    `gorm:"not null;default:'WAREHOUSE'" json:"location_type"` // WAREHOUSE, OFFICE, STORAGE
	Address      *string   `json:"address"`
	Capacity     int       `gorm:"not null;default:0" json:"capacity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Location model
func (Location) TableName() string {
	return "locations"
}
