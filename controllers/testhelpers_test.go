package controllers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kendall-kelly/device-inventory-api/config"
	"github.com/kendall-kelly/device-inventory-api/middleware"
	"github.com/kendall-kelly/device-inventory-api/models"
)

// setupControllerTestDB creates an in-memory database with the full
// schema and installs it as the globally shared connection the
// controllers resolve via config.GetDB.
func setupControllerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.Location{},
		&models.Device{},
		&models.Reservation{},
		&models.Loan{},
		&models.Return{},
		&models.ServiceOrder{},
		&models.ServiceWork{},
		&models.Payment{},
	)
	assert.NoError(t, err)
	config.SetDB(db)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware stands in for the JWT layer: it injects the given
// identity and then resolves it to a database user, exactly like the
// production chain does after token validation.
func mockAuthMiddleware(auth0ID string) gin.HandlerFunc {
	loadUser := middleware.LoadCurrentUser()
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		loadUser(c)
	}
}

func createControllerTestUser(t *testing.T, db *gorm.DB, username, roleName string) *models.User {
	t.Helper()
	user := models.User{
		Auth0ID:  "auth0|" + username,
		Username: username,
		Email:    username + "@example.com",
	}
	if roleName != "" {
		role := models.Role{Name: roleName}
		assert.NoError(t, db.Where(models.Role{Name: roleName}).FirstOrCreate(&role).Error)
		user.RoleID = &role.ID
	}
	assert.NoError(t, db.Create(&user).Error)
	return &user
}

func createControllerTestDevice(t *testing.T, db *gorm.DB, serial string) *models.Device {
	t.Helper()
	category := models.Category{Name: "Laptops-" + serial}
	assert.NoError(t, db.Create(&category).Error)
	brand := models.Brand{Name: "Lenovo-" + serial}
	assert.NoError(t, db.Create(&brand).Error)
	device := models.Device{
		Name:            "ThinkPad " + serial,
		SerialNumber:    serial,
		InventoryNumber: "INV-" + serial,
		CategoryID:      category.ID,
		BrandID:         brand.ID,
		Status:          models.DeviceStatusAvailable,
		Condition:       models.DeviceConditionGood,
	}
	assert.NoError(t, db.Create(&device).Error)
	return &device
}

func testDaysFromNow(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days)
}
