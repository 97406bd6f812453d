package models

import "time"

// PaymentType classifies what a payment is for
type PaymentType string

const (
	PaymentTypeDeposit    PaymentType = "DEPOSIT"
	PaymentTypeFine       PaymentType = "FINE"
	PaymentTypeServiceFee PaymentType = "SERVICE_FEE"
	PaymentTypeRental     PaymentType = "RENTAL"
)

// Payment is a monetary record attached to a loan and/or a service
// order. At least one of the two references must be set.
type Payment struct {
	ID                    uint          `gorm:"primaryKey" json:"id"`
	Amount                float64       `gorm:"not null" json:"amount"`
	PaymentType           PaymentType   `gorm:"not null" json:"payment_type"`
	PaidByID              uint          `gorm:"not null;index" json:"paid_by_id"`
	PaidBy                User          `gorm:"foreignKey:PaidByID" json:"paid_by"`
	RelatedLoanID         *uint         `gorm:"index" json:"related_loan_id"`
	RelatedLoan           *Loan         `gorm:"foreignKey:RelatedLoanID" json:"related_loan,omitempty"`
	RelatedServiceOrderID *uint         `gorm:"index" json:"related_service_order_id"`
	RelatedServiceOrder   *ServiceOrder `gorm:"foreignKey:RelatedServiceOrderID" json:"related_service_order,omitempty"`
	PaidAt                time.Time     `gorm:"not null" json:"paid_at"`
	Notes                 *string       `json:"notes"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
