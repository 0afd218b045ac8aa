// controllers/property_manager.go
package controllers

import (
	"errors"
	"net/http"

	"notprofi-backend/config"
	"notprofi-backend/models"
	"notprofi-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreatePropertyManagerInput defines the expected JSON structure for creating a property manager
type CreatePropertyManagerInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Notes   string `json:"notes"`
}

// UpdatePropertyManagerInput defines the expected JSON structure for updating a property manager
type UpdatePropertyManagerInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Notes   *string `json:"notes"`
}

// CreatePropertyManager creates a new property manager
func CreatePropertyManager(c *gin.Context) {
	var input CreatePropertyManagerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	manager := models.PropertyManager{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
		Notes:   input.Notes,
	}

	if err := config.DB.Create(&manager).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create property manager")
		return
	}

	c.JSON(http.StatusCreated, manager)
}

// GetPropertyManagers retrieves all property managers, newest first
func GetPropertyManagers(c *gin.Context) {
	var managers []models.PropertyManager
	if err := config.DB.Order("id DESC").Find(&managers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve property managers")
		return
	}

	c.JSON(http.StatusOK, managers)
}

// GetPropertyManager retrieves a specific property manager by ID
func GetPropertyManager(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid property manager ID format")
		return
	}

	var manager models.PropertyManager
	if err := config.DB.First(&manager, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Property manager not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, manager)
}

// UpdatePropertyManager updates an existing property manager
func UpdatePropertyManager(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid property manager ID format")
		return
	}

	var input UpdatePropertyManagerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var manager models.PropertyManager
	if err := config.DB.First(&manager, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Property manager not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		manager.Name = *input.Name
	}
	if input.Address != nil {
		manager.Address = *input.Address
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		manager.Phone = *input.Phone
	}
	if input.Email != nil {
		manager.Email = *input.Email
	}
	if input.Notes != nil {
		manager.Notes = *input.Notes
	}

	if err := config.DB.Save(&manager).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update property manager")
		return
	}

	c.JSON(http.StatusOK, manager)
}

// DeletePropertyManager deletes a property manager
func DeletePropertyManager(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid property manager ID format")
		return
	}

	result := config.DB.Delete(&models.PropertyManager{}, id)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete property manager")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Property manager not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property manager deleted successfully"})
}
