// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"notprofi-backend/config"
	"notprofi-backend/models"
	"notprofi-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetDashboardOverview returns the admin landing-page counters: open
// jobs, jobs finished this month, unpaid invoices and this month's
// invoiced revenue.
func GetDashboardOverview(c *gin.Context) {
	now := time.Now()
	currentMonth := now.Format("2006-01")

	start, end, err := utils.MonthBounds(currentMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute month bounds")
		return
	}

	// Status values are free-form with German/English synonyms, so the
	// normalization happens in Go rather than SQL
	var allStatuses []string
	if err := config.DB.Model(&models.Job{}).Pluck("status", &allStatuses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count jobs")
		return
	}
	openJobs := 0
	for _, status := range allStatuses {
		if models.IsOpenStatus(status) {
			openJobs++
		}
	}

	var monthStatuses []string
	err = config.DB.Model(&models.Job{}).
		Where("date_time >= ? AND date_time < ?", start, end).
		Pluck("status", &monthStatuses).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count jobs")
		return
	}
	doneJobsMonth := 0
	for _, status := range monthStatuses {
		if models.IsDoneStatus(status) {
			doneJobsMonth++
		}
	}

	var unpaidInvoices int64
	err = config.DB.Model(&models.Invoice{}).
		Where("status = ?", models.InvoiceStatusUnpaid).
		Count(&unpaidInvoices).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count invoices")
		return
	}

	var monthlyRevenue decimal.Decimal
	err = config.DB.Model(&models.Invoice{}).
		Where("month_year = ?", currentMonth).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&monthlyRevenue).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to sum revenue")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"openJobs":       openJobs,
		"doneJobsMonth":  doneJobsMonth,
		"unpaidInvoices": unpaidInvoices,
		"monthlyRevenue": monthlyRevenue,
	})
}
