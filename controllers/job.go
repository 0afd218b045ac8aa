// controllers/job.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"notprofi-backend/config"
	"notprofi-backend/models"
	"notprofi-backend/services"
	"notprofi-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateJobInput defines the expected JSON structure for creating a job
type CreateJobInput struct {
	DateTime          time.Time        `json:"dateTime" binding:"required"`
	CustomerType      string           `json:"customerType" binding:"required,oneof=property_manager private_customer"`
	PropertyManagerID *uint            `json:"propertyManagerId"`
	PrivateCustomerID *uint            `json:"privateCustomerId"`
	ServiceAddress    string           `json:"serviceAddress" binding:"required"`
	CompanyID         uint             `json:"companyId" binding:"required"`
	Trade             string           `json:"trade" binding:"required"`
	Activity          string           `json:"activity" binding:"required"`
	Status            string           `json:"status"`
	ReportText        string           `json:"reportText"`
	ReferralFee       *decimal.Decimal `json:"referralFee"`
}

// UpdateJobInput defines the expected JSON structure for updating a job
type UpdateJobInput struct {
	DateTime          *time.Time       `json:"dateTime"`
	CustomerType      *string          `json:"customerType"`
	PropertyManagerID *uint            `json:"propertyManagerId"`
	PrivateCustomerID *uint            `json:"privateCustomerId"`
	ServiceAddress    *string          `json:"serviceAddress"`
	CompanyID         *uint            `json:"companyId"`
	Trade             *string          `json:"trade"`
	Activity          *string          `json:"activity"`
	Status            *string          `json:"status"`
	ReportText        *string          `json:"reportText"`
	ReferralFee       *decimal.Decimal `json:"referralFee"`
}

// CreateJob creates a new job (Einsatz)
func CreateJob(c *gin.Context) {
	var input CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// The referenced customer must match the declared type
	switch input.CustomerType {
	case models.CustomerTypePropertyManager:
		if input.PropertyManagerID == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "propertyManagerId is required for property manager jobs")
			return
		}
		var manager models.PropertyManager
		if err := config.DB.First(&manager, *input.PropertyManagerID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Property manager not found")
			return
		}
		input.PrivateCustomerID = nil
	case models.CustomerTypePrivateCustomer:
		if input.PrivateCustomerID == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "privateCustomerId is required for private customer jobs")
			return
		}
		var customer models.PrivateCustomer
		if err := config.DB.First(&customer, *input.PrivateCustomerID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Private customer not found")
			return
		}
		input.PropertyManagerID = nil
	}

	var company models.Company
	if err := config.DB.First(&company, input.CompanyID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Company not found")
		return
	}

	status := models.JobStatusOpen
	if input.Status != "" {
		normalized := models.NormalizeStatus(input.Status)
		if !models.IsOpenStatus(normalized) && !models.IsDoneStatus(normalized) && !models.IsCancelledStatus(normalized) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		status = normalized
	}

	job := models.Job{
		DateTime:          input.DateTime,
		CustomerType:      input.CustomerType,
		PropertyManagerID: input.PropertyManagerID,
		PrivateCustomerID: input.PrivateCustomerID,
		ServiceAddress:    input.ServiceAddress,
		CompanyID:         input.CompanyID,
		Trade:             input.Trade,
		Activity:          input.Activity,
		Status:            status,
		ReportText:        input.ReportText,
		ReferralFee:       input.ReferralFee,
	}

	if err := config.DB.Create(&job).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create job")
		return
	}

	config.DB.Preload("Company").Preload("PropertyManager").Preload("PrivateCustomer").First(&job, job.ID)

	c.JSON(http.StatusCreated, job)
}

// GetJobs retrieves all jobs, newest first
func GetJobs(c *gin.Context) {
	var jobs []models.Job
	query := config.DB.Preload("Company").Preload("PropertyManager").Preload("PrivateCustomer").Order("id DESC")

	if companyID := c.Query("companyId"); companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", models.NormalizeStatus(status))
	}

	if err := query.Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJob retrieves a specific job by ID
func GetJob(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var job models.Job
	err := config.DB.Preload("Company").Preload("PropertyManager").Preload("PrivateCustomer").First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, job)
}

// UpdateJob updates an existing job
func UpdateJob(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var input UpdateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var job models.Job
	if err := config.DB.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.DateTime != nil {
		job.DateTime = *input.DateTime
	}
	if input.CustomerType != nil {
		if *input.CustomerType != models.CustomerTypePropertyManager && *input.CustomerType != models.CustomerTypePrivateCustomer {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer type")
			return
		}
		job.CustomerType = *input.CustomerType
	}
	if input.PropertyManagerID != nil {
		job.PropertyManagerID = input.PropertyManagerID
	}
	if input.PrivateCustomerID != nil {
		job.PrivateCustomerID = input.PrivateCustomerID
	}
	if input.ServiceAddress != nil {
		job.ServiceAddress = *input.ServiceAddress
	}
	if input.CompanyID != nil {
		var company models.Company
		if err := config.DB.First(&company, *input.CompanyID).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Company not found")
			return
		}
		job.CompanyID = *input.CompanyID
	}
	if input.Trade != nil {
		job.Trade = *input.Trade
	}
	if input.Activity != nil {
		job.Activity = *input.Activity
	}
	if input.Status != nil {
		normalized := models.NormalizeStatus(*input.Status)
		if !models.IsOpenStatus(normalized) && !models.IsDoneStatus(normalized) && !models.IsCancelledStatus(normalized) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
			return
		}
		job.Status = normalized
	}
	if input.ReportText != nil {
		job.ReportText = *input.ReportText
	}
	if input.ReferralFee != nil {
		job.ReferralFee = input.ReferralFee
	}

	if err := config.DB.Save(&job).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update job")
		return
	}

	config.DB.Preload("Company").Preload("PropertyManager").Preload("PrivateCustomer").First(&job, job.ID)

	c.JSON(http.StatusOK, job)
}

// DeleteJob deletes a job. Billed jobs stay: the invoice item holds the
// historical record.
func DeleteJob(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var billedCount int64
	if err := config.DB.Model(&models.InvoiceItem{}).Where("job_id = ?", id).Count(&billedCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if billedCount > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Job is already billed and cannot be deleted")
		return
	}

	result := config.DB.Delete(&models.Job{}, id)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete job")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// GetJobPDF streams the job report as a PDF download
func GetJobPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var job models.Job
	err := config.DB.Preload("Company").Preload("PropertyManager").Preload("PrivateCustomer").First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	pdf, err := services.GenerateJobPDF(&job)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=job-%d.pdf", job.JobNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// SendJobEmail mails the job report PDF to the referring customer
func SendJobEmail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var job models.Job
	err := config.DB.Preload("Company").Preload("PropertyManager").Preload("PrivateCustomer").First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Job not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	pdf, err := services.GenerateJobPDF(&job)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	if err := services.SendJobReportEmail(&job, pdf); err != nil {
		if errors.Is(err, services.ErrNoRecipient) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer has no email address on file")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send email")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job report sent successfully"})
}
