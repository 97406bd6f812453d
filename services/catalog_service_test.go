package services

import (
	"context"
	"testing"

	"github.com/kendall-kelly/device-inventory-api/models"
	"github.com/stretchr/testify/assert"
)

func TestCreateCategoryDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	assert.NoError(t, svc.CreateCategory(ctx, &models.Category{Name: "Laptops"}))

	err := svc.CreateCategory(ctx, &models.Category{Name: "Laptops"})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestListCategoriesOrdered(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	for _, name := range []string{"Phones", "Laptops", "Monitors"} {
		assert.NoError(t, svc.CreateCategory(ctx, &models.Category{Name: name}))
	}

	categories, err := svc.ListCategories(ctx)
	assert.NoError(t, err)
	assert.Len(t, categories, 3)
	assert.Equal(t, "Laptops", categories[0].Name)
	assert.Equal(t, "Monitors", categories[1].Name)
	assert.Equal(t, "Phones", categories[2].Name)
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	device := createTestDevice(t, db, "SN-1")

	err := svc.DeleteCategory(ctx, device.CategoryID)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Cannot delete a category that devices still reference", validationErr.Message)

	var count int64
	assert.NoError(t, db.Model(&models.Category{}).Where("id = ?", device.CategoryID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	category := models.Category{Name: "Tablets"}
	assert.NoError(t, db.Create(&category).Error)

	assert.NoError(t, svc.DeleteCategory(ctx, category.ID))

	var count int64
	assert.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)

	err := svc.DeleteCategory(context.Background(), 9999)
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestDeleteBrandInUse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	device := createTestDevice(t, db, "SN-1")

	err := svc.DeleteBrand(ctx, device.BrandID)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Cannot delete a brand that devices still reference", validationErr.Message)
}

func TestCreateBrand(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	country := "Japan"
	assert.NoError(t, svc.CreateBrand(ctx, &models.Brand{Name: "Sony", Country: &country}))

	err := svc.CreateBrand(ctx, &models.Brand{Name: "Sony"})
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	brands, err := svc.ListBrands(ctx)
	assert.NoError(t, err)
	assert.Len(t, brands, 1)
}

// Deleting a location detaches its devices instead of blocking
func TestDeleteLocationDetachesDevices(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	location := models.Location{Name: "Main warehouse", LocationType: models.LocationTypeWarehouse}
	assert.NoError(t, db.Create(&location).Error)

	device := createTestDevice(t, db, "SN-1")
	assert.NoError(t, db.Model(device).Update("location_id", location.ID).Error)

	assert.NoError(t, svc.DeleteLocation(ctx, location.ID))

	var stored models.Device
	assert.NoError(t, db.First(&stored, device.ID).Error)
	assert.Nil(t, stored.LocationID)

	var count int64
	assert.NoError(t, db.Model(&models.Location{}).Where("id = ?", location.ID).Count(&count).Error)
	assert.Zero(t, count)
}
