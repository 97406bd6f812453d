package services

import (
	"context"
	"errors"
	"time"

	"github.com/kendall-kelly/device-inventory-api/models"
	"gorm.io/gorm"
)

// ServiceOrderService runs the repair/maintenance workflow. Its state
// machine is independent of device availability: opening or completing
// an order never touches the device's status.
type ServiceOrderService struct {
	db *gorm.DB
}

// NewServiceOrderService creates a new service-order service instance
func NewServiceOrderService(db *gorm.DB) *ServiceOrderService {
	return &ServiceOrderService{db: db}
}

// Create opens a PENDING order against a device
func (s *ServiceOrderService) Create(ctx context.Context, order *models.ServiceOrder) (*models.ServiceOrder, error) {
	var device models.Device
	if err := s.db.WithContext(ctx).First(&device, order.DeviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Device not found")
		}
		return nil, err
	}

	if order.Status == "" {
		order.Status = models.ServiceOrderStatusPending
	}
	if order.Priority == "" {
		order.Priority = models.ServicePriorityMedium
	}
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, order.ID)
}

// Get fetches a service order with its work log
func (s *ServiceOrderService) Get(ctx context.Context, orderID uint) (*models.ServiceOrder, error) {
	var order models.ServiceOrder
	if err := s.db.WithContext(ctx).
		Preload("Device").Preload("AssignedTo").Preload("CreatedBy").
		Preload("Works").Preload("Works.PerformedBy").
		First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Service order not found")
		}
		return nil, err
	}
	return &order, nil
}

// Start moves a PENDING order to IN_PROGRESS
func (s *ServiceOrderService) Start(ctx context.Context, orderID uint) (*models.ServiceOrder, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.ServiceOrder
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Service order not found")
			}
			return err
		}
		if order.Status != models.ServiceOrderStatusPending {
			return NewInvalidStateError("Can only start pending orders")
		}
		return tx.Model(&order).Update("status", models.ServiceOrderStatusInProgress).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// Complete finishes an order. Only PENDING and IN_PROGRESS orders can
// be completed; CompletedAt is stamped on this transition and never
// changes afterwards.
func (s *ServiceOrderService) Complete(ctx context.Context, orderID uint) (*models.ServiceOrder, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.ServiceOrder
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Service order not found")
			}
			return err
		}
		if order.Status != models.ServiceOrderStatusPending && order.Status != models.ServiceOrderStatusInProgress {
			return NewInvalidStateError("Can only complete pending or in-progress orders")
		}

		now := time.Now().UTC()
		return tx.Model(&order).Updates(map[string]interface{}{
			"status":       models.ServiceOrderStatusCompleted,
			"completed_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// Cancel aborts a PENDING or IN_PROGRESS order
func (s *ServiceOrderService) Cancel(ctx context.Context, orderID uint) (*models.ServiceOrder, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.ServiceOrder
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Service order not found")
			}
			return err
		}
		if order.Status != models.ServiceOrderStatusPending && order.Status != models.ServiceOrderStatusInProgress {
			return NewInvalidStateError("Can only cancel pending or in-progress orders")
		}
		return tx.Model(&order).Update("status", models.ServiceOrderStatusCancelled).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// AddWork appends a work-log entry to an order. Entries can be added
// regardless of the order's status and are immutable once written.
func (s *ServiceOrderService) AddWork(ctx context.Context, orderID uint, work *models.ServiceWork) (*models.ServiceWork, error) {
	var order models.ServiceOrder
	if err := s.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Service order not found")
		}
		return nil, err
	}

	work.ServiceOrderID = order.ID
	if work.PerformedAt.IsZero() {
		work.PerformedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(work).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Preload("PerformedBy").
		First(work, work.ID).Error; err != nil {
		return nil, err
	}
	return work, nil
}

// ListWorks returns the work log for an order, oldest first
func (s *ServiceOrderService) ListWorks(ctx context.Context, orderID uint) ([]models.ServiceWork, error) {
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}
	var works []models.ServiceWork
	if err := s.db.WithContext(ctx).
		Preload("PerformedBy").
		Where("service_order_id = ?", orderID).
		Order("performed_at").
		Find(&works).Error; err != nil {
		return nil, err
	}
	return works, nil
}

// List returns service orders filtered by status, most recent first
func (s *ServiceOrderService) List(ctx context.Context, status models.ServiceOrderStatus) ([]models.ServiceOrder, error) {
	q := s.db.WithContext(ctx).
		Preload("Device").Preload("AssignedTo").Preload("CreatedBy").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []models.ServiceOrder
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
