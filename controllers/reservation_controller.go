package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/device-inventory-api/config"
	"github.com/kendall-kelly/device-inventory-api/middleware"
	"github.com/kendall-kelly/device-inventory-api/services"
)

// CreateReservationRequest represents the request body for reserving a device
type CreateReservationRequest struct {
	DeviceID      uint      `json:"device_id" binding:"required"`
	ReservedFrom  time.Time `json:"reserved_from" binding:"required"`
	ReservedUntil time.Time `json:"reserved_until" binding:"required"`
	Notes         *string   `json:"notes"`
}

// CreateReservation handles POST /api/v1/reservations - places an
// advisory hold for the authenticated user
func CreateReservation(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewReservationService(config.GetDB())
	reservation, err := svc.Create(c.Request.Context(), user.ID, req.DeviceID, req.ReservedFrom, req.ReservedUntil, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    reservation,
	})
}

// ListReservations handles GET /api/v1/reservations. Managers and
// staff see everything; other users see only their own records.
func ListReservations(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	svc := services.NewReservationService(config.GetDB())
	if user.IsManagerOrAdmin() {
		reservations, err := svc.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    reservations,
		})
		return
	}

	reservations, err := svc.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservations,
	})
}

// ListMyReservations handles GET /api/v1/reservations/my
func ListMyReservations(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	svc := services.NewReservationService(config.GetDB())
	reservations, err := svc.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reservations,
	})
}

// CancelReservation handles POST /api/v1/reservations/:id/cancel.
// Users may cancel their own reservations; managers may cancel any.
func CancelReservation(c *gin.Context) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewReservationService(config.GetDB())
	reservation, err := svc.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if reservation.UserID != user.ID && !user.IsManagerOrAdmin() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You can only cancel your own reservations",
			},
		})
		return
	}

	cancelled, err := svc.Cancel(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cancelled,
	})
}
