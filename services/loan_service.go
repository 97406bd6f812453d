package services

import (
	"context"
	"errors"
	"time"

	"github.com/kendall-kelly/device-inventory-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoanService is the loan/return lifecycle engine. Every multi-record
// mutation runs inside a single transaction so the loan, return and
// device status writes succeed or fail together.
type LoanService struct {
	db *gorm.DB
}

// NewLoanService creates a new loan service instance
func NewLoanService(db *gorm.DB) *LoanService {
	return &LoanService{db: db}
}

// lockForUpdate adds a row-level lock on dialects that support it.
// SQLite (used in tests) has no SELECT ... FOR UPDATE; there the
// guarded status update below carries the conflict detection alone.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Create issues a loan for a device. The device must be AVAILABLE;
// on success the loan is created ACTIVE and the device flips to LOANED
// in the same transaction. Two concurrent calls against the same
// device cannot both succeed: the status write is guarded on the
// previously observed AVAILABLE status.
func (s *LoanService) Create(ctx context.Context, userID, deviceID, managerID uint, dueDate time.Time) (*models.Loan, error) {
	var loan models.Loan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := lockForUpdate(tx).First(&device, deviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Device not found")
			}
			return err
		}

		if device.Status != models.DeviceStatusAvailable {
			return NewValidationError("Device is not available for loan")
		}

		// Guarded update: refuses to proceed if another transaction
		// changed the status after our read.
		res := tx.Model(&models.Device{}).
			Where("id = ? AND status = ?", device.ID, models.DeviceStatusAvailable).
			Update("status", models.DeviceStatusLoaned)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NewValidationError("Device is not available for loan")
		}

		loan = models.Loan{
			UserID:    userID,
			DeviceID:  deviceID,
			ManagerID: managerID,
			LoanedAt:  time.Now().UTC(),
			DueDate:   dueDate,
			Status:    models.LoanStatusActive,
		}
		return tx.Create(&loan).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Preload("User").Preload("Device").Preload("Manager").
		First(&loan, loan.ID).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

// Get fetches a loan by ID. The read path also recomputes overdue
// status: an ACTIVE loan whose due date has passed is persisted as
// OVERDUE before being returned.
func (s *LoanService) Get(ctx context.Context, loanID uint) (*models.Loan, error) {
	var loan models.Loan
	if err := s.db.WithContext(ctx).
		Preload("User").Preload("Device").Preload("Manager").
		First(&loan, loanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Loan not found")
		}
		return nil, err
	}

	if loan.IsDue(time.Now().UTC()) {
		loan.Status = models.LoanStatusOverdue
		if err := s.db.WithContext(ctx).Model(&models.Loan{}).
			Where("id = ?", loan.ID).
			Update("status", models.LoanStatusOverdue).Error; err != nil {
			return nil, err
		}
	}
	return &loan, nil
}

// Update persists changes to a loan's due date and notes. Overdue
// detection fires here: an ACTIVE loan past its due date is forced to
// OVERDUE before the update is written.
func (s *LoanService) Update(ctx context.Context, loanID uint, dueDate *time.Time, notes *string) (*models.Loan, error) {
	var loan models.Loan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&loan, loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Loan not found")
			}
			return err
		}

		if dueDate != nil {
			loan.DueDate = *dueDate
		}
		if notes != nil {
			loan.Notes = notes
		}
		if loan.IsDue(time.Now().UTC()) {
			loan.Status = models.LoanStatusOverdue
		}
		return tx.Save(&loan).Error
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// RecordReturn closes a loan. In one transaction it creates the return
// record, marks the loan RETURNED, flips the device back to AVAILABLE
// and propagates the observed condition onto the device. A loan that
// already has a return is rejected.
func (s *LoanService) RecordReturn(ctx context.Context, loanID uint, condition models.DeviceCondition, inspectorID uint, notes *string) (*models.Return, error) {
	var ret models.Return
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := lockForUpdate(tx).First(&loan, loanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Loan not found")
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.Return{}).
			Where("loan_id = ?", loan.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 || loan.Status == models.LoanStatusReturned {
			return NewInvalidStateError("Loan has already been returned")
		}

		ret = models.Return{
			LoanID:        loan.ID,
			ReturnedAt:    time.Now().UTC(),
			Condition:     condition,
			InspectedByID: inspectorID,
			Notes:         notes,
		}
		if err := tx.Create(&ret).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Loan{}).
			Where("id = ?", loan.ID).
			Update("status", models.LoanStatusReturned).Error; err != nil {
			return err
		}

		return tx.Model(&models.Device{}).
			Where("id = ?", loan.DeviceID).
			Updates(map[string]interface{}{
				"status":    models.DeviceStatusAvailable,
				"condition": condition,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Preload("Loan").Preload("Loan.Device").Preload("Loan.User").Preload("InspectedBy").
		First(&ret, ret.ID).Error; err != nil {
		return nil, err
	}
	return &ret, nil
}

// List returns loans filtered by status, most recent first
func (s *LoanService) List(ctx context.Context, status models.LoanStatus) ([]models.Loan, error) {
	q := s.db.WithContext(ctx).
		Preload("User").Preload("Device").Preload("Manager").
		Order("loaned_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var loans []models.Loan
	if err := q.Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

// ListByUser returns all loans issued to the given user
func (s *LoanService) ListByUser(ctx context.Context, userID uint) ([]models.Loan, error) {
	var loans []models.Loan
	if err := s.db.WithContext(ctx).
		Preload("User").Preload("Device").Preload("Manager").
		Where("user_id = ?", userID).
		Order("loaned_at DESC").
		Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

// ListReturns returns all recorded returns, most recent first
func (s *LoanService) ListReturns(ctx context.Context) ([]models.Return, error) {
	var returns []models.Return
	if err := s.db.WithContext(ctx).
		Preload("Loan").Preload("Loan.Device").Preload("Loan.User").Preload("InspectedBy").
		Order("returned_at DESC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}
