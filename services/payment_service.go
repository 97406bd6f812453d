package services

import (
	"context"
	"errors"
	"time"

	"github.com/kendall-kelly/device-inventory-api/models"
	"gorm.io/gorm"
)

// PaymentService is a validation-only ledger: payments attach money to
// a loan and/or a service order but never drive state transitions
type PaymentService struct {
	db *gorm.DB
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Create records a payment. At least one of the loan / service order
// references must be set, and any reference given must exist.
func (s *PaymentService) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if payment.RelatedLoanID == nil && payment.RelatedServiceOrderID == nil {
		return nil, NewValidationError("Payment must be related to either a loan or service order")
	}
	if payment.Amount <= 0 {
		return nil, NewValidationError("Payment amount must be positive")
	}

	if payment.RelatedLoanID != nil {
		var loan models.Loan
		if err := s.db.WithContext(ctx).First(&loan, *payment.RelatedLoanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewNotFoundError("Related loan not found")
			}
			return nil, err
		}
	}
	if payment.RelatedServiceOrderID != nil {
		var order models.ServiceOrder
		if err := s.db.WithContext(ctx).First(&order, *payment.RelatedServiceOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewNotFoundError("Related service order not found")
			}
			return nil, err
		}
	}

	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Preload("PaidBy").Preload("RelatedLoan").Preload("RelatedServiceOrder").
		First(payment, payment.ID).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

// List returns all payments, most recent first
func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.WithContext(ctx).
		Preload("PaidBy").Preload("RelatedLoan").Preload("RelatedServiceOrder").
		Order("paid_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListByUser returns the given user's payments
func (s *PaymentService) ListByUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.WithContext(ctx).
		Preload("PaidBy").Preload("RelatedLoan").Preload("RelatedServiceOrder").
		Where("paid_by_id = ?", userID).
		Order("paid_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListByType returns payments of a single type, most recent first
func (s *PaymentService) ListByType(ctx context.Context, paymentType models.PaymentType) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.WithContext(ctx).
		Preload("PaidBy").Preload("RelatedLoan").Preload("RelatedServiceOrder").
		Where("payment_type = ?", paymentType).
		Order("paid_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// TotalByUser sums a user's payment amounts. Pure query, no mutation.
func (s *PaymentService) TotalByUser(ctx context.Context, userID uint) (float64, error) {
	var total *float64
	if err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Select("SUM(amount)").
		Where("paid_by_id = ?", userID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
