package models

import "time"

// DeviceStatus is the lifecycle state of a device. It is a cached
// field kept in sync by the loan/return and retirement operations:
// an active or overdue loan implies LOANED, a recorded return flips
// the device back to AVAILABLE.
type DeviceStatus string

const (
	DeviceStatusAvailable DeviceStatus = "AVAILABLE"
	DeviceStatusReserved  DeviceStatus = "RESERVED"
	DeviceStatusLoaned    DeviceStatus = "LOANED"
	DeviceStatusInService DeviceStatus = "IN_SERVICE"
	DeviceStatusRetired   DeviceStatus = "RETIRED"
)

// DeviceCondition is the last observed physical condition, updated
// from the condition recorded on each return
type DeviceCondition string

const (
	DeviceConditionExcellent DeviceCondition = "EXCELLENT"
	DeviceConditionGood      DeviceCondition = "GOOD"
	DeviceConditionFair      DeviceCondition = "FAIR"
	DeviceConditionPoor      DeviceCondition = "POOR"
)

// Device represents a trackable physical asset
type Device struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	SerialNumber    string          `gorm:"uniqueIndex;not null" json:"serial_number"`
	InventoryNumber string          `gorm:"uniqueIndex;not null" json:"inventory_number"`
	CategoryID      uint            `gorm:"not null;index" json:"category_id"`
	Category        Category        `gorm:"foreignKey:CategoryID" json:"category"`
	BrandID         uint            `gorm:"not null;index" json:"brand_id"`
	Brand           Brand           `gorm:"foreignKey:BrandID" json:"brand"`
	LocationID      *uint           `gorm:"index" json:"location_id"` // nullable, cleared when the location is deleted
	Location        *Location       `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Status          DeviceStatus    `gorm:"not null;default:'AVAILABLE'" json:"status"`
	Condition       DeviceCondition `gorm:"not null;default:'GOOD'" json:"condition"`
	PurchaseDate    *time.Time      `json:"purchase_date"`
	PurchasePrice   *float64        `json:"purchase_price"`
	WarrantyUntil   *time.Time      `json:"warranty_until"`
	Notes           *string         `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Device model
func (Device) TableName() string {
	return "devices"
}
