// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"notprofi-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db      *gorm.DB
	billing *BillingService
	client  *twilio.RestClient
}

func NewReminderService(db *gorm.DB, billing *BillingService) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db:      db,
		billing: billing,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Generate invoices for the previous month on the 1st at 6 AM
	c.AddFunc("0 6 1 * *", s.GenerateForPreviousMonth)

	// Remind companies about unpaid invoices every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendUnpaidInvoiceReminders)

	c.Start()
	log.Println("Billing scheduler started")
}

// GenerateForPreviousMonth runs one billing pass for the month that
// just ended. The run is idempotent, so overlapping with a manual
// generation is harmless.
func (s *ReminderService) GenerateForPreviousMonth() {
	monthYear := time.Now().AddDate(0, -1, 0).Format("2006-01")
	result, err := s.billing.GenerateInvoices(monthYear)
	if err != nil {
		log.Printf("Scheduled generation for %s failed: %v", monthYear, err)
		return
	}
	log.Printf("Scheduled generation for %s: %s", monthYear, result.Message)
}

// SendUnpaidInvoiceReminders texts every company holding an unpaid
// invoice that is older than REMINDER_AFTER_DAYS (default 14), at most
// once per week per invoice. Each attempt is logged.
func (s *ReminderService) SendUnpaidInvoiceReminders() {
	log.Println("Starting unpaid invoice reminder processing...")

	afterDays := 14
	if env := os.Getenv("REMINDER_AFTER_DAYS"); env != "" {
		if d, err := strconv.Atoi(env); err == nil {
			afterDays = d
		}
	}
	cutoff := time.Now().AddDate(0, 0, -afterDays)

	var invoices []models.Invoice
	if err := s.db.Preload("Company").
		Where("status = ? AND created_at < ?", models.InvoiceStatusUnpaid, cutoff).
		Find(&invoices).Error; err != nil {
		log.Printf("Failed to fetch unpaid invoices: %v", err)
		return
	}

	for _, invoice := range invoices {
		if s.recentlyReminded(invoice.ID) {
			continue
		}
		s.sendReminder(invoice)
	}

	log.Println("Unpaid invoice reminder processing completed")
}

func (s *ReminderService) recentlyReminded(invoiceID uint) bool {
	var count int64
	weekAgo := time.Now().AddDate(0, 0, -7)
	s.db.Model(&models.ReminderLog{}).
		Where("invoice_id = ? AND status = ? AND sent_at > ?", invoiceID, "sent", weekAgo).
		Count(&count)
	return count > 0
}

func (s *ReminderService) sendReminder(invoice models.Invoice) {
	message := fmt.Sprintf(
		"Notprofi24: Die Abrechnung %s (%s) ueber EUR %s ist noch offen. Bitte um Ueberweisung.",
		invoice.InvoiceNumber, invoice.MonthYear, invoice.TotalAmount.StringFixed(2))

	logEntry := models.ReminderLog{
		InvoiceID: invoice.ID,
		CompanyID: invoice.CompanyID,
		Message:   message,
		Channel:   "sms",
		SentAt:    time.Now(),
	}

	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if fromNumber == "" || invoice.Company.Phone == "" {
		logEntry.Status = "failed"
		logEntry.ErrorMessage = "twilio sender or company phone not configured"
		s.db.Create(&logEntry)
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(invoice.Company.Phone)
	params.SetFrom(fromNumber)
	params.SetBody(message)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Invoice %s: reminder SMS failed: %v", invoice.InvoiceNumber, err)
		logEntry.Status = "failed"
		logEntry.ErrorMessage = err.Error()
	} else {
		logEntry.Status = "sent"
	}

	s.db.Create(&logEntry)
}
