package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/device-inventory-api/config"
	"github.com/kendall-kelly/device-inventory-api/models"
	"github.com/kendall-kelly/device-inventory-api/services"
)

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// CreateCategory handles POST /api/v1/categories (staff only)
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	svc := services.NewCatalogService(config.GetDB())
	if err := svc.CreateCategory(c.Request.Context(), &category); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// ListCategories handles GET /api/v1/categories
func ListCategories(c *gin.Context) {
	svc := services.NewCatalogService(config.GetDB())
	categories, err := svc.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// DeleteCategory handles DELETE /api/v1/categories/:id (staff only)
func DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewCatalogService(config.GetDB())
	if err := svc.DeleteCategory(c.Request.Context(), uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted",
	})
}

// CreateBrandRequest represents the request body for creating a brand
type CreateBrandRequest struct {
	Name    string  `json:"name" binding:"required"`
	Country *string `json:"country"`
	Website *string `json:"website"`
}

// CreateBrand handles POST /api/v1/brands (staff only)
func CreateBrand(c *gin.Context) {
	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	brand := models.Brand{
		Name:    req.Name,
		Country: req.Country,
		Website: req.Website,
	}
	svc := services.NewCatalogService(config.GetDB())
	if err := svc.CreateBrand(c.Request.Context(), &brand); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    brand,
	})
}

// ListBrands handles GET /api/v1/brands
func ListBrands(c *gin.Context) {
	svc := services.NewCatalogService(config.GetDB())
	brands, err := svc.ListBrands(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    brands,
	})
}

// DeleteBrand handles DELETE /api/v1/brands/:id (staff only)
func DeleteBrand(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewCatalogService(config.GetDB())
	if err := svc.DeleteBrand(c.Request.Context(), uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Brand deleted",
	})
}

// CreateLocationRequest represents the request body for creating a location
type CreateLocationRequest struct {
	Name         string  `json:"name" binding:"required"`
	LocationType string  `json:"location_type" binding:"omitempty,oneof=WAREHOUSE OFFICE STORAGE"`
	Address      *string `json:"address"`
	Capacity     int     `json:"capacity"`
}

// CreateLocation handles POST /api/v1/locations (staff only)
func CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	location := models.Location{
		Name:         req.Name,
		LocationType: req.LocationType,
		Address:      req.Address,
		Capacity:     req.Capacity,
	}
	svc := services.NewCatalogService(config.GetDB())
	if err := svc.CreateLocation(c.Request.Context(), &location); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    location,
	})
}

// ListLocations handles GET /api/v1/locations
func ListLocations(c *gin.Context) {
	svc := services.NewCatalogService(config.GetDB())
	locations, err := svc.ListLocations(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    locations,
	})
}

// DeleteLocation handles DELETE /api/v1/locations/:id (staff only).
// Devices stored at the location keep existing; their location
// reference is cleared.
func DeleteLocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondBindingError(c, err)
		return
	}

	svc := services.NewCatalogService(config.GetDB())
	if err := svc.DeleteLocation(c.Request.Context(), uint(id)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Location deleted",
	})
}
