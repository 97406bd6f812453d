package services

import (
	"context"
	"errors"
	"time"

	"github.com/kendall-kelly/device-inventory-api/models"
	"gorm.io/gorm"
)

// ReservationService manages advisory holds on devices. Reservations
// do not check for overlapping holds or active loans on the same
// device, and they never touch the device's status.
type ReservationService struct {
	db *gorm.DB
}

// NewReservationService creates a new reservation service instance
func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db}
}

// Create places a hold on a device for the given window. The window
// must be non-empty: from strictly before until.
func (s *ReservationService) Create(ctx context.Context, userID, deviceID uint, from, until time.Time, notes *string) (*models.Reservation, error) {
	if !from.Before(until) {
		return nil, NewValidationError("Reserved until must be after reserved from")
	}

	var device models.Device
	if err := s.db.WithContext(ctx).First(&device, deviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Device not found")
		}
		return nil, err
	}

	reservation := models.Reservation{
		UserID:        userID,
		DeviceID:      deviceID,
		ReservedFrom:  from,
		ReservedUntil: until,
		Status:        models.ReservationStatusActive,
		Notes:         notes,
	}
	if err := s.db.WithContext(ctx).Create(&reservation).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Preload("User").Preload("Device").
		First(&reservation, reservation.ID).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Cancel transitions an ACTIVE reservation to CANCELLED. Reservations
// in any other state are rejected.
func (s *ReservationService) Cancel(ctx context.Context, reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Reservation not found")
			}
			return err
		}

		if reservation.Status != models.ReservationStatusActive {
			return NewInvalidStateError("Can only cancel active reservations")
		}

		reservation.Status = models.ReservationStatusCancelled
		return tx.Save(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Get fetches a reservation by ID
func (s *ReservationService) Get(ctx context.Context, reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.WithContext(ctx).
		Preload("User").Preload("Device").
		First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("Reservation not found")
		}
		return nil, err
	}
	return &reservation, nil
}

// List returns all reservations, most recent first
func (s *ReservationService) List(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.db.WithContext(ctx).
		Preload("User").Preload("Device").
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListByUser returns the given user's reservations
func (s *ReservationService) ListByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.db.WithContext(ctx).
		Preload("User").Preload("Device").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}
