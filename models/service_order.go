package models

import "time"

// ServiceOrderStatus is the repair workflow state machine:
// PENDING -> IN_PROGRESS -> COMPLETED, with CANCELLED reachable from
// PENDING and IN_PROGRESS
type ServiceOrderStatus string

const (
	ServiceOrderStatusPending    ServiceOrderStatus = "PENDING"
	ServiceOrderStatusInProgress ServiceOrderStatus = "IN_PROGRESS"
	ServiceOrderStatusCompleted  ServiceOrderStatus = "COMPLETED"
	ServiceOrderStatusCancelled  ServiceOrderStatus = "CANCELLED"
)

// ServicePriority ranks how urgently an order should be worked
type ServicePriority string

const (
	ServicePriorityLow    ServicePriority = "LOW"
	ServicePriorityMedium ServicePriority = "MEDIUM"
	ServicePriorityHigh   ServicePriority = "HIGH"
	ServicePriorityUrgent ServicePriority = "URGENT"
)

// ServiceOrder is a repair/maintenance ticket against a device. It is
// tracked independently of the device's availability status.
type ServiceOrder struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	DeviceID         uint               `gorm:"not null;index" json:"device_id"`
	Device           Device             `gorm:"foreignKey:DeviceID" json:"device"`
	IssueDescription string             `gorm:"not null" json:"issue_description"`
	Status           ServiceOrderStatus `gorm:"not null;default:'PENDING'" json:"status"`
	Priority         ServicePriority    `gorm:"not null;default:'MEDIUM'" json:"priority"`
	AssignedToID     *uint              `gorm:"index" json:"assigned_to_id"`
	AssignedTo       *User              `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	CreatedByID      *uint              `gorm:"index" json:"created_by_id"`
	CreatedBy        *User              `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	CompletedAt      *time.Time         `json:"completed_at"` // set only on the transition to COMPLETED
	Works            []ServiceWork      `gorm:"foreignKey:ServiceOrderID" json:"works"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// TableName specifies the table name for the ServiceOrder model
func (ServiceOrder) TableName() string {
	return "service_orders"
}

// ServiceWork is an append-only work-log entry under a service order.
// Entries are never mutated after creation.
type ServiceWork struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ServiceOrderID  uint      `gorm:"not null;index" json:"service_order_id"`
	WorkDescription string    `gorm:"not null" json:"work_description"`
	PartsUsed       *string   `json:"parts_used"`
	Cost            *float64  `json:"cost"`
	PerformedByID   *uint     `gorm:"index" json:"performed_by_id"`
	PerformedBy     *User     `gorm:"foreignKey:PerformedByID" json:"performed_by,omitempty"`
	PerformedAt     time.Time `gorm:"not null" json:"performed_at"`
	Notes           *string   `json:"notes"`
}

// TableName specifies the table name for the ServiceWork model
func (ServiceWork) TableName() string {
	return "service_works"
}
