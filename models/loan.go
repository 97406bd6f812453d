package models

import "time"

// LoanStatus tracks a loan from issue to hand-back. ACTIVE loans whose
// due date has passed are flipped to OVERDUE lazily, on the next write
// (or single-record read) that touches them.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "ACTIVE"
	LoanStatusOverdue  LoanStatus = "OVERDUE"
	LoanStatusReturned LoanStatus = "RETURNED"
)

// Loan is a time-bounded assignment of a device to a user, authorized
// by a manager
type Loan struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID" json:"user"`
	DeviceID  uint       `gorm:"not null;index" json:"device_id"`
	Device    Device     `gorm:"foreignKey:DeviceID" json:"device"`
	ManagerID uint       `gorm:"not null;index" json:"manager_id"`
	Manager   User       `gorm:"foreignKey:ManagerID" json:"manager"`
	LoanedAt  time.Time  `gorm:"not null" json:"loaned_at"` // set once at creation
	DueDate   time.Time  `gorm:"not null" json:"due_date"`
	Status    LoanStatus `gorm:"not null;default:'ACTIVE'" json:"status"`
	Notes     *string    `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Loan model
func (Loan) TableName() string {
	return "loans"
}

// IsDue reports whether an active loan has passed its due date
func (l *Loan) IsDue(now time.Time) bool {
	return l.Status == LoanStatusActive && l.DueDate.Before(now)
}

// Return is the closing record of a loan. Each loan has at most one,
// and a return is never mutated after creation.
type Return struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	LoanID        uint            `gorm:"uniqueIndex;not null" json:"loan_id"` // one return per loan
	Loan          Loan            `gorm:"foreignKey:LoanID" json:"loan"`
	ReturnedAt    time.Time       `gorm:"not null" json:"returned_at"`
	Condition     DeviceCondition `gorm:"not null" json:"condition"` // observed at hand-back, propagated to the device
	InspectedByID uint            `gorm:"not null;index" json:"inspected_by_id"`
	InspectedBy   User            `gorm:"foreignKey:InspectedByID" json:"inspected_by"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName specifies the table name for the Return model
func (Return) TableName() string {
	return "returns"
}
