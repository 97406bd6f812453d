package models

import "time"

// ReservationStatus tracks the advisory hold lifecycle
type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "ACTIVE"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

// Reservation is a time-windowed hold on a device by a user. It is
// advisory: it does not lock the device against loans.
type Reservation struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UserID         uint              `gorm:"not null;index" json:"user_id"`
	User           User              `gorm:"foreignKey:UserID" json:"user"`
	DeviceID       uint              `gorm:"not null;index" json:"device_id"`
	Device         Device            `gorm:"foreignKey:DeviceID" json:"device"`
	ReservedFrom   time.Time         `gorm:"not null" json:"reserved_from"`
	ReservedUntil  time.Time         `gorm:"not null" json:"reserved_until"` // always after ReservedFrom
	Status         ReservationStatus `gorm:"not null;default:'ACTIVE'" json:"status"`
	Notes          *string           `json:"notes"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// TableName specifies the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
