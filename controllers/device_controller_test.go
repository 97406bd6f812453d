package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kendall-kelly/device-inventory-api/models"
)

func deviceTestRouter(user *models.User) *gin.Engine {
	router := setupTestRouter()
	authed := router.Group("/api/v1", mockAuthMiddleware(user.Auth0ID))
	authed.GET("/devices", ListDevices)
	authed.GET("/devices/available", ListAvailableDevices)
	authed.GET("/devices/by-serial", FindDeviceBySerial)
	authed.GET("/devices/:id", GetDevice)
	authed.GET("/devices/:id/history", GetDeviceHistory)
	authed.POST("/devices", CreateDevice)
	authed.PUT("/devices/:id", UpdateDevice)
	authed.POST("/devices/:id/retire", RetireDevice)
	return router
}

func TestCreateDeviceEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	manager := createControllerTestUser(t, db, "manager", models.RoleManager)
	router := deviceTestRouter(manager)

	category := models.Category{Name: "Laptops"}
	assert.NoError(t, db.Create(&category).Error)
	brand := models.Brand{Name: "Lenovo"}
	assert.NoError(t, db.Create(&brand).Error)

	w := postJSON(router, "/api/v1/devices", gin.H{
		"name":             "ThinkPad X1",
		"serial_number":    "SN-100",
		"inventory_number": "INV-100",
		"category_id":      category.ID,
		"brand_id":         brand.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Data models.Device `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, models.DeviceStatusAvailable, response.Data.Status)
	assert.Equal(t, models.DeviceConditionGood, response.Data.Condition)
}

func TestCreateDeviceEndpointDuplicateSerial(t *testing.T) {
	db := setupControllerTestDB(t)
	manager := createControllerTestUser(t, db, "manager", models.RoleManager)
	existing := createControllerTestDevice(t, db, "SN-100")
	router := deviceTestRouter(manager)

	w := postJSON(router, "/api/v1/devices", gin.H{
		"name":             "Clone",
		"serial_number":    existing.SerialNumber,
		"inventory_number": "INV-OTHER",
		"category_id":      existing.CategoryID,
		"brand_id":         existing.BrandID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestFindDeviceBySerialEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	user := createControllerTestUser(t, db, "alice", models.RoleUser)
	device := createControllerTestDevice(t, db, "SN-100")
	router := deviceTestRouter(user)

	w := getPath(router, "/api/v1/devices/by-serial?serial=SN-100")
	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data models.Device `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, device.ID, response.Data.ID)

	w = getPath(router, "/api/v1/devices/by-serial?serial=SN-MISSING")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Device not found")

	w = getPath(router, "/api/v1/devices/by-serial")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Serial number is required")
}

func TestListAvailableDevicesEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	user := createControllerTestUser(t, db, "alice", models.RoleUser)
	available := createControllerTestDevice(t, db, "SN-1")
	loaned := createControllerTestDevice(t, db, "SN-2")
	assert.NoError(t, db.Model(loaned).Update("status", models.DeviceStatusLoaned).Error)
	router := deviceTestRouter(user)

	w := getPath(router, "/api/v1/devices/available")
	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data []models.Device `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 1)
	assert.Equal(t, available.ID, response.Data[0].ID)
}

func TestUpdateDeviceEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	manager := createControllerTestUser(t, db, "manager", models.RoleManager)
	device := createControllerTestDevice(t, db, "SN-1")
	router := deviceTestRouter(manager)

	payload, _ := json.Marshal(gin.H{"name": "ThinkPad X1 Carbon", "condition": "EXCELLENT"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/v1/devices/%d", device.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data models.Device `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ThinkPad X1 Carbon", response.Data.Name)
	assert.Equal(t, models.DeviceConditionExcellent, response.Data.Condition)
}

func TestRetireDeviceEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	manager := createControllerTestUser(t, db, "manager", models.RoleManager)
	device := createControllerTestDevice(t, db, "SN-1")
	router := deviceTestRouter(manager)

	w := postJSON(router, fmt.Sprintf("/api/v1/devices/%d/retire", device.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data models.Device `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, models.DeviceStatusRetired, response.Data.Status)

	// A loaned device cannot be retired
	loanedDevice := createControllerTestDevice(t, db, "SN-2")
	assert.NoError(t, db.Model(loanedDevice).Update("status", models.DeviceStatusLoaned).Error)
	w = postJSON(router, fmt.Sprintf("/api/v1/devices/%d/retire", loanedDevice.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot retire a loaned device")
}

func TestGetDeviceHistoryEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	user := createControllerTestUser(t, db, "alice", models.RoleUser)
	device := createControllerTestDevice(t, db, "SN-1")
	router := deviceTestRouter(user)

	w := getPath(router, fmt.Sprintf("/api/v1/devices/%d/history", device.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data struct {
			Device            models.Device `json:"device"`
			LoansCount        int64         `json:"loans_count"`
			ReservationsCount int64         `json:"reservations_count"`
			ServiceOrderCount int64         `json:"service_orders_count"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, device.ID, response.Data.Device.ID)
	assert.Zero(t, response.Data.LoansCount)
}
