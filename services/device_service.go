package services

import (
	"context"
	"errors"
	"strings"

	"github.com/kendall-kelly/device-inventory-api/models"
	"gorm.io/gorm"
)

// DeviceService is the device registry: it owns device records and
// their cached status/condition fields
type DeviceService struct {
	db *gorm.DB
}

// NewDeviceService creates a new device service instance
func NewDeviceService(db *gorm.DB) *DeviceService {
	return &DeviceService{db: db}
}

// DeviceHistory summarizes a device's lifecycle activity
type DeviceHistory struct {
	Device            *models.Device `json:"device"`
	LoansCount        int64          `json:"loans_count"`
	ReservationsCount int64          `json:"reservations_count"`
	ServiceOrderCount int64          `json:"service_orders_count"`
}

// isUniqueViolation detects duplicate-key errors from both PostgreSQL
// and SQLite
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// Create registers a new device. The serial and inventory numbers must
// be globally unique and the category/brand references must exist.
func (s *DeviceService) Create(ctx context.Context, device *models.Device) (*models.Device, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, device.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("Category does not exist")
		}
		return nil, err
	}
	var brand models.Brand
	if err := s.db.WithContext(ctx).First(&brand, device.BrandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("Brand does not exist")
		}
		return nil, err
	}
	if device.LocationID != nil {
		var location models.Location
		if err := s.db.WithContext(ctx).First(&location, *device.LocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("Location does not exist")
			}
			return nil, err
		}
	}

	if device.Status == "" {
		device.Status = models.DeviceStatusAvailable
	}
	if device.Condition == "" {
		device.Condition = models.DeviceConditionGood
	}

	if err := s.db.WithContext(ctx).Create(device).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, NewValidationError("A device with this serial or inventory number already exists")
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Preload("Category").Preload("Brand").Preload("Location").
		First(device, device.ID).Error; err != nil {
		return nil, err
	}
	return device, nil
}

// Get fetches a device by ID
func (s *DeviceService) Get(ctx context.Context, deviceID uint) (*models.Device, error) {
	var device models.Device
	if err := s.db.WithContext(ctx).
		Preload("Category").Preload("Brand").Preload("Location").
		First(&device, deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Device not found")
		}
		return nil, err
	}
	return &device, nil
}

// FindBySerial looks a device up by its serial number
func (s *DeviceService) FindBySerial(ctx context.Context, serial string) (*models.Device, error) {
	var device models.Device
	if err := s.db.WithContext(ctx).
		Preload("Category").Preload("Brand").Preload("Location").
		Where("serial_number = ?", serial).
		First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Device not found")
		}
		return nil, err
	}
	return &device, nil
}

// List returns all devices, newest first
func (s *DeviceService) List(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	if err := s.db.WithContext(ctx).
		Preload("Category").Preload("Brand").Preload("Location").
		Order("created_at DESC").
		Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// ListAvailable returns devices whose status is AVAILABLE
func (s *DeviceService) ListAvailable(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	if err := s.db.WithContext(ctx).
		Preload("Category").Preload("Brand").Preload("Location").
		Where("status = ?", models.DeviceStatusAvailable).
		Order("created_at DESC").
		Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// Update modifies a device's descriptive fields. Lifecycle-triggered
// status changes (loan, return) are owned by LoanService and override
// whatever status is written here.
func (s *DeviceService) Update(ctx context.Context, deviceID uint, updates map[string]interface{}) (*models.Device, error) {
	device, err := s.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(device).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, NewValidationError("A device with this serial or inventory number already exists")
		}
		return nil, err
	}
	return s.Get(ctx, deviceID)
}

// Retire marks a device RETIRED. Devices with an open loan cannot be
// retired.
func (s *DeviceService) Retire(ctx context.Context, deviceID uint) (*models.Device, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := lockForUpdate(tx).First(&device, deviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Device not found")
			}
			return err
		}
		if device.Status == models.DeviceStatusLoaned {
			return NewInvalidStateError("Cannot retire a loaned device")
		}
		return tx.Model(&device).Update("status", models.DeviceStatusRetired).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, deviceID)
}

// History reports how often a device has been loaned, reserved and
// serviced
func (s *DeviceService) History(ctx context.Context, deviceID uint) (*DeviceHistory, error) {
	device, err := s.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	history := &DeviceHistory{Device: device}
	if err := s.db.WithContext(ctx).Model(&models.Loan{}).
		Where("device_id = ?", deviceID).Count(&history.LoansCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("device_id = ?", deviceID).Count(&history.ReservationsCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.ServiceOrder{}).
		Where("device_id = ?", deviceID).Count(&history.ServiceOrderCount).Error; err != nil {
		return nil, err
	}
	return history, nil
}
