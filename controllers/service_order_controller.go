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

// CreateServiceOrderRequest represents the request body for opening a
// service order
type CreateServiceOrderRequest struct {
	DeviceID         uint   `json:"device_id" binding:"required"`
	IssueDescription string `json:"issue_description" binding:"required"`
	Priority         string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	AssignedToID     *uint  `json:"assigned_to_id"`
}

// CreateServiceOrder handles POST /api/v1/service-orders (managers/admins only)
func CreateServiceOrder(c *gin.Context) {
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

	var req CreateServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	creatorID := user.ID
	order := models.ServiceOrder{
		DeviceID:         req.DeviceID,
		IssueDescription: req.IssueDescription,
		Priority:         models.ServicePriority(req.Priority),
		AssignedToID:     req.AssignedToID,
		CreatedByID:      &creatorID,
	}

	svc := services.NewServiceOrderService(config.GetDB())
	created, err := svc.Create(c.Request.Context(), &order)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
	})
}

// ListServiceOrders handles GET /api/v1/service-orders (managers/admins only)
func ListServiceOrders(c *gin.Context) {
	svc := services.NewServiceOrderService(config.GetDB())
	orders, err := svc.List(c.Request.Context(), "")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListPendingServiceOrders handles GET /api/v1/service-orders/pending
func ListPendingServiceOrders(c *gin.Context) {
	svc := services.NewServiceOrderService(config.GetDB())
	orders, err := svc.List(c.Request.Context(), models.ServiceOrderStatusPending)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListInProgressServiceOrders handles GET /api/v1/service-orders/in-progress
func ListInProgressServiceOrders(c *gin.Context) {
	svc := services.NewServiceOrderService(config.GetDB())
	orders, err := svc.List(c.Request.Context(), models.ServiceOrderStatusInProgress)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetServiceOrder handles GET /api/v1/service-orders/:id
func GetServiceOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewServiceOrderService(config.GetDB())
	order, err := svc.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// StartServiceOrder handles POST /api/v1/service-orders/:id/start
func StartServiceOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewServiceOrderService(config.GetDB())
	order, err := svc.Start(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CompleteServiceOrder handles POST /api/v1/service-orders/:id/complete
func CompleteServiceOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewServiceOrderService(config.GetDB())
	order, err := svc.Complete(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CancelServiceOrder handles POST /api/v1/service-orders/:id/cancel
func CancelServiceOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewServiceOrderService(config.GetDB())
	order, err := svc.Cancel(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AddServiceWorkRequest represents the request body for logging work
// on a service order
type AddServiceWorkRequest struct {
	WorkDescription string   `json:"work_description" binding:"required"`
	PartsUsed       *string  `json:"parts_used"`
	Cost            *float64 `json:"cost"`
	Notes           *string  `json:"notes"`
}

// AddServiceWork handles POST /api/v1/service-orders/:id/works.
// Work entries can be logged at any order status.
func AddServiceWork(c *gin.Context) {
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

	var req AddServiceWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	performerID := user.ID
	work := models.ServiceWork{
		WorkDescription: req.WorkDescription,
		PartsUsed:       req.PartsUsed,
		Cost:            req.Cost,
		PerformedByID:   &performerID,
		Notes:           req.Notes,
	}

	svc := services.NewServiceOrderService(config.GetDB())
	created, err := svc.AddWork(c.Request.Context(), uint(id), &work)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
	})
}

// ListServiceWorks handles GET /api/v1/service-orders/:id/works
func ListServiceWorks(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewServiceOrderService(config.GetDB())
	works, err := svc.ListWorks(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    works,
	})
}
