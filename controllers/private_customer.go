// controllers/private_customer.go
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

// CreatePrivateCustomerInput defines the expected JSON structure for creating a private customer
type CreatePrivateCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Notes   string `json:"notes"`
}

// UpdatePrivateCustomerInput defines the expected JSON structure for updating a private customer
type UpdatePrivateCustomerInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Notes   *string `json:"notes"`
}

// CreatePrivateCustomer creates a new private customer
func CreatePrivateCustomer(c *gin.Context) {
	var input CreatePrivateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer := models.PrivateCustomer{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
		Notes:   input.Notes,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create private customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetPrivateCustomers retrieves all private customers, newest first
func GetPrivateCustomers(c *gin.Context) {
	var customers []models.PrivateCustomer
	if err := config.DB.Order("id DESC").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve private customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetPrivateCustomer retrieves a specific private customer by ID
func GetPrivateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid private customer ID format")
		return
	}

	var customer models.PrivateCustomer
	if err := config.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Private customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdatePrivateCustomer updates an existing private customer
func UpdatePrivateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid private customer ID format")
		return
	}

	var input UpdatePrivateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.PrivateCustomer
	if err := config.DB.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Private customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update private customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeletePrivateCustomer deletes a private customer
func DeletePrivateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid private customer ID format")
		return
	}

	result := config.DB.Delete(&models.PrivateCustomer{}, id)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete private customer")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Private customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Private customer deleted successfully"})
}
