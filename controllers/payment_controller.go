package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/device-inventory-api/config"
	"github.com/kendall-kelly/device-inventory-api/middleware"
	"github.com/kendall-kelly/device-inventory-api/models"
	"github.com/kendall-kelly/device-inventory-api/services"
)

// CreatePaymentRequest represents the request body for recording a payment
type CreatePaymentRequest struct {
	Amount                float64 `json:"amount" binding:"required,gt=0"`
	PaymentType           string  `json:"payment_type" binding:"required,oneof=DEPOSIT FINE SERVICE_FEE RENTAL"`
	RelatedLoanID         *uint   `json:"related_loan_id"`
	RelatedServiceOrderID *uint   `json:"related_service_order_id"`
	Notes                 *string `json:"notes"`
}

// CreatePayment handles POST /api/v1/payments - records a payment made
// by the authenticated user. The payment must reference a loan and/or
// a service order.
func CreatePayment(c *gin.Context) {
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

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	payment := models.Payment{
		Amount:                req.Amount,
		PaymentType:           models.PaymentType(req.PaymentType),
		PaidByID:              user.ID,
		RelatedLoanID:         req.RelatedLoanID,
		RelatedServiceOrderID: req.RelatedServiceOrderID,
		Notes:                 req.Notes,
	}

	svc := services.NewPaymentService(config.GetDB())
	created, err := svc.Create(c.Request.Context(), &payment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
	})
}

// ListPayments handles GET /api/v1/payments. Managers and staff see
// all payments; other users see only their own.
func ListPayments(c *gin.Context) {
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

	svc := services.NewPaymentService(config.GetDB())
	if user.IsManagerOrAdmin() {
		payments, err := svc.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    payments,
		})
		return
	}

	payments, err := svc.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payments,
	})
}

// ListMyPayments handles GET /api/v1/payments/my
func ListMyPayments(c *gin.Context) {
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

	svc := services.NewPaymentService(config.GetDB())
	payments, err := svc.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payments,
	})
}

// ListPaymentsByType handles GET /api/v1/payments/by-type?type=FINE
func ListPaymentsByType(c *gin.Context) {
	paymentType := c.Query("type")
	if paymentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Payment type is required",
			},
		})
		return
	}

	svc := services.NewPaymentService(config.GetDB())
	payments, err := svc.ListByType(c.Request.Context(), models.PaymentType(paymentType))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payments,
	})
}

// GetTotalByUser handles GET /api/v1/payments/total-by-user?user=ID.
// Without a user parameter it totals the authenticated user's own
// payments.
func GetTotalByUser(c *gin.Context) {
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

	targetID := user.ID
	if param := c.Query("user"); param != "" {
		parsed, err := strconv.ParseUint(param, 10, 32)
		if err != nil {
			respondBindingError(c, err)
			return
		}
		targetID = uint(parsed)
	}

	svc := services.NewPaymentService(config.GetDB())
	total, err := svc.TotalByUser(c.Request.Context(), targetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user_id":      targetID,
			"total_amount": total,
		},
	})
}
