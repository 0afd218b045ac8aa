// controllers/company.go
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

// CreateCompanyInput defines the expected JSON structure for creating a partner company
type CreateCompanyInput struct {
	CompanyName string   `json:"companyName" binding:"required"`
	ContactName string   `json:"contactName" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Phone       string   `json:"phone" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Trades      []string `json:"trades" binding:"required,min=1"` // ["Installateur", "Elektriker", ...]
	Notes       string   `json:"notes"`
}

// UpdateCompanyInput defines the expected JSON structure for updating a partner company
type UpdateCompanyInput struct {
	CompanyName *string   `json:"companyName"`
	ContactName *string   `json:"contactName"`
	Address     *string   `json:"address"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	Trades      *[]string `json:"trades"`
	IsActive    *bool     `json:"isActive"`
	Notes       *string   `json:"notes"`
}

// CreateCompany creates a new partner company
func CreateCompany(c *gin.Context) {
	var input CreateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	company := models.Company{
		CompanyName: input.CompanyName,
		ContactName: input.ContactName,
		Address:     input.Address,
		Phone:       input.Phone,
		Email:       input.Email,
		Trades:      input.Trades,
		IsActive:    true,
		Notes:       input.Notes,
	}

	if err := config.DB.Create(&company).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create company")
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetCompanies retrieves all partner companies, newest first
func GetCompanies(c *gin.Context) {
	var companies []models.Company
	if err := config.DB.Order("id DESC").Find(&companies).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve companies")
		return
	}

	c.JSON(http.StatusOK, companies)
}

// GetCompany retrieves a specific partner company by ID
func GetCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	var company models.Company
	if err := config.DB.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// UpdateCompany updates an existing partner company
func UpdateCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	var input UpdateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var company models.Company
	if err := config.DB.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CompanyName != nil {
		company.CompanyName = *input.CompanyName
	}
	if input.ContactName != nil {
		company.ContactName = *input.ContactName
	}
	if input.Address != nil {
		company.Address = *input.Address
	}
	if input.Phone != nil {
		company.Phone = *input.Phone
	}
	if input.Email != nil {
		company.Email = *input.Email
	}
	if input.Trades != nil {
		company.Trades = *input.Trades
	}
	if input.IsActive != nil {
		company.IsActive = *input.IsActive
	}
	if input.Notes != nil {
		company.Notes = *input.Notes
	}

	if err := config.DB.Save(&company).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update company")
		return
	}

	c.JSON(http.StatusOK, company)
}

// DeleteCompany deletes a partner company
func DeleteCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	result := config.DB.Delete(&models.Company{}, id)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete company")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}
