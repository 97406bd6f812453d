package services

import (
	"testing"
	"time"

	"github.com/kendall-kelly/device-inventory-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
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
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Auth0ID:  "auth0|" + username,
		Username: username,
		Email:    username + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", username, err)
	}
	return &user
}

// createTestDevice creates a device together with the category and
// brand it requires
func createTestDevice(t *testing.T, db *gorm.DB, serial string) *models.Device {
	t.Helper()

	category := models.Category{Name: "Laptops-" + serial}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	brand := models.Brand{Name: "Lenovo-" + serial}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("Failed to create test brand: %v", err)
	}

	device := models.Device{
		Name:            "ThinkPad " + serial,
		SerialNumber:    serial,
		InventoryNumber: "INV-" + serial,
		CategoryID:      category.ID,
		BrandID:         brand.ID,
		Status:          models.DeviceStatusAvailable,
		Condition:       models.DeviceConditionGood,
	}
	if err := db.Create(&device).Error; err != nil {
		t.Fatalf("Failed to create test device %s: %v", serial, err)
	}
	return &device
}

func daysFromNow(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, days)
}
