package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/device-inventory-api/config"
	"github.com/kendall-kelly/device-inventory-api/models"
	"github.com/kendall-kelly/device-inventory-api/services"
)

// CreateDeviceRequest represents the request body for registering a device
type CreateDeviceRequest struct {
	Name            string     `json:"name" binding:"required"`
	SerialNumber    string     `json:"serial_number" binding:"required"`
	InventoryNumber string     `json:"inventory_number" binding:"required"`
	CategoryID      uint       `json:"category_id" binding:"required"`
	BrandID         uint       `json:"brand_id" binding:"required"`
	LocationID      *uint      `json:"location_id"`
	Condition       string     `json:"condition" binding:"omitempty,oneof=EXCELLENT GOOD FAIR POOR"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	PurchasePrice   *float64   `json:"purchase_price"`
	WarrantyUntil   *time.Time `json:"warranty_until"`
	Notes           *string    `json:"notes"`
}

// CreateDevice handles POST /api/v1/devices (managers/admins only)
func CreateDevice(c *gin.Context) {
	var req CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	device := models.Device{
		Name:            req.Name,
		SerialNumber:    req.SerialNumber,
		InventoryNumber: req.InventoryNumber,
		CategoryID:      req.CategoryID,
		BrandID:         req.BrandID,
		LocationID:      req.LocationID,
		Condition:       models.DeviceCondition(req.Condition),
		PurchaseDate:    req.PurchaseDate,
		PurchasePrice:   req.PurchasePrice,
		WarrantyUntil:   req.WarrantyUntil,
		Notes:           req.Notes,
	}

	svc := services.NewDeviceService(config.GetDB())
	created, err := svc.Create(c.Request.Context(), &device)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
	})
}

// ListDevices handles GET /api/v1/devices
func ListDevices(c *gin.Context) {
	svc := services.NewDeviceService(config.GetDB())
	devices, err := svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    devices,
	})
}

// ListAvailableDevices handles GET /api/v1/devices/available
func ListAvailableDevices(c *gin.Context) {
	svc := services.NewDeviceService(config.GetDB())
	devices, err := svc.ListAvailable(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    devices,
	})
}

// GetDevice handles GET /api/v1/devices/:id
func GetDevice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewDeviceService(config.GetDB())
	device, err := svc.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    device,
	})
}

// FindDeviceBySerial handles GET /api/v1/devices/by-serial?serial=SN
func FindDeviceBySerial(c *gin.Context) {
	serial := c.Query("serial")
	if serial == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Serial number is required",
			},
		})
		return
	}

	svc := services.NewDeviceService(config.GetDB())
	device, err := svc.FindBySerial(c.Request.Context(), serial)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    device,
	})
}

// UpdateDeviceRequest represents the request body for updating a device
type UpdateDeviceRequest struct {
	Name            *string  `json:"name"`
	SerialNumber    *string  `json:"serial_number"`
	InventoryNumber *string  `json:"inventory_number"`
	LocationID      *uint    `json:"location_id"`
	Condition       *string  `json:"condition" binding:"omitempty,oneof=EXCELLENT GOOD FAIR POOR"`
	Notes           *string  `json:"notes"`
	PurchasePrice   *float64 `json:"purchase_price"`
}

// UpdateDevice handles PUT /api/v1/devices/:id (managers/admins only)
func UpdateDevice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	var req UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SerialNumber != nil {
		updates["serial_number"] = *req.SerialNumber
	}
	if req.InventoryNumber != nil {
		updates["inventory_number"] = *req.InventoryNumber
	}
	if req.LocationID != nil {
		updates["location_id"] = *req.LocationID
	}
	if req.Condition != nil {
		updates["condition"] = *req.Condition
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.PurchasePrice != nil {
		updates["purchase_price"] = *req.PurchasePrice
	}

	svc := services.NewDeviceService(config.GetDB())
	device, err := svc.Update(c.Request.Context(), uint(id), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    device,
	})
}

// RetireDevice handles POST /api/v1/devices/:id/retire (managers/admins only)
func RetireDevice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewDeviceService(config.GetDB())
	device, err := svc.Retire(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    device,
	})
}

// GetDeviceHistory handles GET /api/v1/devices/:id/history
func GetDeviceHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewDeviceService(config.GetDB())
	history, err := svc.History(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
	})
}
