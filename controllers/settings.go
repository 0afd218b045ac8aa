// controllers/settings.go
package controllers

import (
	"net/http"

	"notprofi-backend/config"
	"notprofi-backend/services"
	"notprofi-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// UpdateSettingsInput defines the expected JSON structure for updating billing settings
type UpdateSettingsInput struct {
	StandardFee     decimal.Decimal `json:"standardFee" binding:"required"`
	CancellationFee decimal.Decimal `json:"cancellationFee" binding:"required"`
	VATRate         decimal.Decimal `json:"vatRate" binding:"required"`
}

// GetSettings returns the billing settings, seeding defaults if none exist
func GetSettings(c *gin.Context) {
	billing := services.NewBillingService(config.DB)
	settings, err := billing.Settings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings stores new fee/VAT values. Amounts already captured on
// invoice items stay as they were.
func UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.StandardFee.IsNegative() || input.CancellationFee.IsNegative() || input.VATRate.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Fees and VAT rate must not be negative")
		return
	}

	billing := services.NewBillingService(config.DB)
	settings, err := billing.UpdateSettings(input.StandardFee, input.CancellationFee, input.VATRate)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
