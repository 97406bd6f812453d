package services

import (
	"context"
	"testing"

	"github.com/kendall-kelly/device-inventory-api/models"
	"github.com/stretchr/testify/assert"
)

func TestCreatePaymentRequiresReference(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)

	payer := createTestUser(t, db, "payer")

	_, err := svc.Create(context.Background(), &models.Payment{
		Amount:      50,
		PaymentType: models.PaymentTypeFine,
		PaidByID:    payer.ID,
	})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Payment must be related to either a loan or service order", validationErr.Message)

	// Rejected before anything hits the table
	var count int64
	assert.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePaymentNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	ctx := context.Background()

	payer := createTestUser(t, db, "payer")
	manager := createTestUser(t, db, "manager")
	device := createTestDevice(t, db, "SN-1")
	loan, err := NewLoanService(db).Create(ctx, payer.ID, device.ID, manager.ID, daysFromNow(7))
	assert.NoError(t, err)

	for _, amount := range []float64{0, -10} {
		_, err := svc.Create(ctx, &models.Payment{
			Amount:        amount,
			PaymentType:   models.PaymentTypeFine,
			PaidByID:      payer.ID,
			RelatedLoanID: &loan.ID,
		})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Payment amount must be positive", validationErr.Message)
	}
}

func TestCreatePaymentWithLoanReference(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	ctx := context.Background()

	payer := createTestUser(t, db, "payer")
	manager := createTestUser(t, db, "manager")
	device := createTestDevice(t, db, "SN-1")
	loan, err := NewLoanService(db).Create(ctx, payer.ID, device.ID, manager.ID, daysFromNow(7))
	assert.NoError(t, err)

	payment, err := svc.Create(ctx, &models.Payment{
		Amount:        25,
		PaymentType:   models.PaymentTypeDeposit,
		PaidByID:      payer.ID,
		RelatedLoanID: &loan.ID,
	})
	assert.NoError(t, err)
	assert.False(t, payment.PaidAt.IsZero())
	assert.Equal(t, loan.ID, *payment.RelatedLoanID)
}

func TestCreatePaymentWithServiceOrderReference(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	ctx := context.Background()

	payer := createTestUser(t, db, "payer")
	device := createTestDevice(t, db, "SN-1")
	order, err := NewServiceOrderService(db).Create(ctx, &models.ServiceOrder{
		DeviceID:         device.ID,
		IssueDescription: "Battery swollen",
		CreatedByID:      &payer.ID,
	})
	assert.NoError(t, err)

	payment, err := svc.Create(ctx, &models.Payment{
		Amount:                120,
		PaymentType:           models.PaymentTypeServiceFee,
		PaidByID:              payer.ID,
		RelatedServiceOrderID: &order.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, order.ID, *payment.RelatedServiceOrderID)
}

func TestCreatePaymentDanglingReference(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	ctx := context.Background()

	payer := createTestUser(t, db, "payer")
	missing := uint(9999)

	_, err := svc.Create(ctx, &models.Payment{
		Amount:        10,
		PaymentType:   models.PaymentTypeFine,
		PaidByID:      payer.ID,
		RelatedLoanID: &missing,
	})
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)

	_, err = svc.Create(ctx, &models.Payment{
		Amount:                10,
		PaymentType:           models.PaymentTypeServiceFee,
		PaidByID:              payer.ID,
		RelatedServiceOrderID: &missing,
	})
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestTotalByUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	ctx := context.Background()

	payer := createTestUser(t, db, "payer")
	other := createTestUser(t, db, "other")
	manager := createTestUser(t, db, "manager")
	device := createTestDevice(t, db, "SN-1")
	loan, err := NewLoanService(db).Create(ctx, payer.ID, device.ID, manager.ID, daysFromNow(7))
	assert.NoError(t, err)

	for _, amount := range []float64{25, 10.50} {
		_, err := svc.Create(ctx, &models.Payment{
			Amount:        amount,
			PaymentType:   models.PaymentTypeFine,
			PaidByID:      payer.ID,
			RelatedLoanID: &loan.ID,
		})
		assert.NoError(t, err)
	}

	total, err := svc.TotalByUser(ctx, payer.ID)
	assert.NoError(t, err)
	assert.InDelta(t, 35.50, total, 0.001)

	// No payments means zero, not an error
	total, err = svc.TotalByUser(ctx, other.ID)
	assert.NoError(t, err)
	assert.Zero(t, total)
}

func TestListPaymentsByType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)
	ctx := context.Background()

	payer := createTestUser(t, db, "payer")
	manager := createTestUser(t, db, "manager")
	device := createTestDevice(t, db, "SN-1")
	loan, err := NewLoanService(db).Create(ctx, payer.ID, device.ID, manager.ID, daysFromNow(7))
	assert.NoError(t, err)

	for _, paymentType := range []models.PaymentType{models.PaymentTypeDeposit, models.PaymentTypeFine} {
		_, err := svc.Create(ctx, &models.Payment{
			Amount:        15,
			PaymentType:   paymentType,
			PaidByID:      payer.ID,
			RelatedLoanID: &loan.ID,
		})
		assert.NoError(t, err)
	}

	fines, err := svc.ListByType(ctx, models.PaymentTypeFine)
	assert.NoError(t, err)
	assert.Len(t, fines, 1)
	assert.Equal(t, models.PaymentTypeFine, fines[0].PaymentType)

	mine, err := svc.ListByUser(ctx, payer.ID)
	assert.NoError(t, err)
	assert.Len(t, mine, 2)
}
