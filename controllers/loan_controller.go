package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/device-inventory-api/config"
	"github.com/kendall-kelly/device-inventory-api/middleware"
	"github.com/kendall-kelly/device-inventory-api/models"
	"github.com/kendall-kelly/device-inventory-api/services"
)

// CreateLoanRequest represents the request body for issuing a loan.
// The authenticated manager is recorded as the authorizer.
type CreateLoanRequest struct {
	DeviceID uint      `json:"device_id" binding:"required"`
	UserID   uint      `json:"user_id" binding:"required"`
	DueDate  time.Time `json:"due_date" binding:"required"`
}

// CreateLoan handles POST /api/v1/loans (managers/admins only)
func CreateLoan(c *gin.Context) {
	manager, err := middleware.GetCurrentUser(c)
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

	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewLoanService(config.GetDB())
	loan, err := svc.Create(c.Request.Context(), req.UserID, req.DeviceID, manager.ID, req.DueDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    loan,
	})
}

// ListLoans handles GET /api/v1/loans (managers/admins only)
func ListLoans(c *gin.Context) {
	svc := services.NewLoanService(config.GetDB())
	loans, err := svc.List(c.Request.Context(), "")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    loans,
	})
}

// ListActiveLoans handles GET /api/v1/loans/active (managers/admins only)
func ListActiveLoans(c *gin.Context) {
	svc := services.NewLoanService(config.GetDB())
	loans, err := svc.List(c.Request.Context(), models.LoanStatusActive)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    loans,
	})
}

// ListOverdueLoans handles GET /api/v1/loans/overdue (managers/admins only)
func ListOverdueLoans(c *gin.Context) {
	svc := services.NewLoanService(config.GetDB())
	loans, err := svc.List(c.Request.Context(), models.LoanStatusOverdue)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    loans,
	})
}

// ListMyLoans handles GET /api/v1/loans/my - any authenticated user
func ListMyLoans(c *gin.Context) {
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

	svc := services.NewLoanService(config.GetDB())
	loans, err := svc.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    loans,
	})
}

// GetLoan handles GET /api/v1/loans/:id (managers/admins only).
// Fetching a loan recomputes its overdue status.
func GetLoan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewLoanService(config.GetDB())
	loan, err := svc.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    loan,
	})
}

// UpdateLoanRequest represents the request body for updating a loan
type UpdateLoanRequest struct {
	DueDate *time.Time `json:"due_date"`
	Notes   *string    `json:"notes"`
}

// UpdateLoan handles PUT /api/v1/loans/:id (managers/admins only).
// An active loan past its due date is forced to OVERDUE as part of
// the update.
func UpdateLoan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	var req UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewLoanService(config.GetDB())
	loan, err := svc.Update(c.Request.Context(), uint(id), req.DueDate, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    loan,
	})
}

// CreateReturnRequest represents the request body for recording a return
type CreateReturnRequest struct {
	LoanID    uint    `json:"loan_id" binding:"required"`
	Condition string  `json:"condition" binding:"required,oneof=EXCELLENT GOOD FAIR POOR"`
	Notes     *string `json:"notes"`
}

// CreateReturn handles POST /api/v1/returns (managers/admins only).
// The authenticated manager is recorded as the inspector. Closing the
// loan, releasing the device and propagating the observed condition
// happen atomically.
func CreateReturn(c *gin.Context) {
	inspector, err := middleware.GetCurrentUser(c)
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

	var req CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewLoanService(config.GetDB())
	ret, err := svc.RecordReturn(c.Request.Context(), req.LoanID, models.DeviceCondition(req.Condition), inspector.ID, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    ret,
	})
}

// ListReturns handles GET /api/v1/returns (managers/admins only)
func ListReturns(c *gin.Context) {
	svc := services.NewLoanService(config.GetDB())
	returns, err := svc.ListReturns(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    returns,
	})
}
