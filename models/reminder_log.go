package models

import (
	"time"

	"gorm.io/gorm"
)

// ReminderLog records every payment-reminder attempt for an unpaid
// invoice, successful or not.
type ReminderLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InvoiceID    uint      `gorm:"index;not null" json:"invoiceId"`
	CompanyID    uint      `gorm:"index;not null" json:"companyId"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // sms, email
	SentAt       time.Time `json:"sentAt"`

	gorm.Model
}
