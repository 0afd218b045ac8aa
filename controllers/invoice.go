// controllers/invoice.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"notprofi-backend/config"
	"notprofi-backend/services"
	"notprofi-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GenerateInvoicesInput defines the expected JSON structure for a generation run
type GenerateInvoicesInput struct {
	MonthYear string `json:"monthYear" binding:"required"` // "YYYY-MM"
}

// GenerateInvoices runs one billing pass for the given month. The run is
// idempotent: re-posting the same month without new jobs changes nothing.
func GenerateInvoices(c *gin.Context) {
	var input GenerateInvoicesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	billing := services.NewBillingService(config.DB)
	result, err := billing.GenerateInvoices(input.MonthYear)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonthYear) {
			utils.RespondWithError(c, http.StatusBadRequest, "monthYear must be in YYYY-MM format")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate invoices")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetInvoices retrieves all invoices, newest first
func GetInvoices(c *gin.Context) {
	billing := services.NewBillingService(config.DB)
	invoices, err := billing.ListInvoices()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice with its line items and derived totals
func GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	billing := services.NewBillingService(config.DB)
	invoice, err := billing.GetInvoice(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	totals, err := billing.Totals(invoice)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute totals")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoice": invoice,
		"totals":  totals,
	})
}

// MarkInvoicePaid sets the invoice status to paid
func MarkInvoicePaid(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	billing := services.NewBillingService(config.DB)
	invoice, err := billing.MarkPaid(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to mark invoice as paid")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// GetInvoicePDF streams the invoice as a PDF download
func GetInvoicePDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	billing := services.NewBillingService(config.DB)
	invoice, err := billing.GetInvoice(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	totals, err := billing.Totals(invoice)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute totals")
		return
	}

	pdf, err := services.GenerateInvoicePDF(invoice, totals)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", invoice.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// SendInvoiceEmail mails the invoice PDF to the partner company. A
// delivery failure leaves invoice state untouched; sentAt is only
// stamped after the SMTP handshake succeeds.
func SendInvoiceEmail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	billing := services.NewBillingService(config.DB)
	invoice, err := billing.GetInvoice(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	totals, err := billing.Totals(invoice)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute totals")
		return
	}

	pdf, err := services.GenerateInvoicePDF(invoice, totals)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	if err := services.SendInvoiceEmail(invoice, pdf); err != nil {
		if errors.Is(err, services.ErrNoRecipient) {
			utils.RespondWithError(c, http.StatusBadRequest, "Company has no email address on file")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send email")
		}
		return
	}

	if err := billing.MarkSent(id); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Email sent but failed to record sent timestamp")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice sent successfully"})
}
