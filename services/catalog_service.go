package services

import (
	"context"
	"errors"

	"github.com/kendall-kelly/device-inventory-api/models"
	"gorm.io/gorm"
)

// CatalogService manages the static reference data: categories, brands
// and locations. Categories and brands cannot be deleted while devices
// reference them; deleting a location clears the reference instead.
type CatalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// CreateCategory adds a new category
func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return NewValidationError("A category with this name already exists")
		}
		return err
	}
	return nil
}

// ListCategories returns all categories ordered by name
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteCategory removes a category unless devices still reference it
func (s *CatalogService) DeleteCategory(ctx context.Context, categoryID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Category not found")
			}
			return err
		}

		var referenced int64
		if err := tx.Model(&models.Device{}).
			Where("category_id = ?", categoryID).
			Count(&referenced).Error; err != nil {
			return err
		}
		if referenced > 0 {
			return NewValidationError("Cannot delete a category that devices still reference")
		}
		return tx.Delete(&category).Error
	})
}

// CreateBrand adds a new brand
func (s *CatalogService) CreateBrand(ctx context.Context, brand *models.Brand) error {
	if err := s.db.WithContext(ctx).Create(brand).Error; err != nil {
		if isUniqueViolation(err) {
			return NewValidationError("A brand with this name already exists")
		}
		return err
	}
	return nil
}

// ListBrands returns all brands ordered by name
func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := s.db.WithContext(ctx).Order("name").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// DeleteBrand removes a brand unless devices still reference it
func (s *CatalogService) DeleteBrand(ctx context.Context, brandID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var brand models.Brand
		if err := tx.First(&brand, brandID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Brand not found")
			}
			return err
		}

		var referenced int64
		if err := tx.Model(&models.Device{}).
			Where("brand_id = ?", brandID).
			Count(&referenced).Error; err != nil {
			return err
		}
		if referenced > 0 {
			return NewValidationError("Cannot delete a brand that devices still reference")
		}
		return tx.Delete(&brand).Error
	})
}

// CreateLocation adds a new location
func (s *CatalogService) CreateLocation(ctx context.Context, location *models.Location) error {
	if location.LocationType == "" {
		location.LocationType = models.LocationTypeWarehouse
	}
	return s.db.WithContext(ctx).Create(location).Error
}

// ListLocations returns all locations ordered by name
func (s *CatalogService) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := s.db.WithContext(ctx).Order("name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// DeleteLocation removes a location and clears the reference on any
// device stored there, atomically
func (s *CatalogService) DeleteLocation(ctx context.Context, locationID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var location models.Location
		if err := tx.First(&location, locationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("Location not found")
			}
			return err
		}

		if err := tx.Model(&models.Device{}).
			Where("location_id = ?", locationID).
			Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&location).Error
	})
}
