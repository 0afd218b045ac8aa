package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice payment states
const (
	InvoiceStatusUnpaid = "unpaid"
	InvoiceStatusPaid   = "paid"
)

// Invoice is one monthly commission statement for one partner company.
// At most one invoice may exist per (CompanyID, MonthYear) pair; that
// invariant is repaired by the billing service's merge step rather than
// enforced by a unique constraint, since legacy data can already hold
// duplicates.
type Invoice struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	InvoiceNumber string `gorm:"uniqueIndex;not null" json:"invoiceNumber"` // YYYYMM-<companyID>-<token>
	MonthYear     string `gorm:"not null;index:idx_invoices_company_month" json:"monthYear"`
	CompanyID     uint   `gorm:"not null;index:idx_invoices_company_month" json:"companyId"`

	Status string `gorm:"not null;default:'unpaid'" json:"status"` // unpaid | paid

	// Gross total, derived from the items on every generation run.
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	SentAt    *time.Time `json:"sentAt"`
	PaidAt    *time.Time `json:"paidAt"`
	CreatedAt time.Time  `json:"createdAt"`

	Company Company       `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// InvoiceItem bills exactly one job. The unique index on JobID is the
// store-level guard against double billing: a racing second insert for
// the same job is rejected.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"not null;index" json:"invoiceId"`
	JobID     uint `gorm:"not null;uniqueIndex" json:"jobId"`

	// Net amount captured at billing time; later settings changes do not
	// touch it.
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`

	Job Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}
