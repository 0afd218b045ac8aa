package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer types a job can be referred by
const (
	CustomerTypePropertyManager = "property_manager"
	CustomerTypePrivateCustomer = "private_customer"
)

// Job is a single dispatched service call (Einsatz). Once a job is
// referenced by an invoice item it counts as billed and is never picked
// up by invoice generation again.
type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JobNumber uint      `gorm:"uniqueIndex;not null" json:"jobNumber"`
	DateTime  time.Time `gorm:"not null;index" json:"dateTime"`

	CustomerType      string `gorm:"not null" json:"customerType"` // property_manager | private_customer
	PropertyManagerID *uint  `gorm:"index" json:"propertyManagerId"`
	PrivateCustomerID *uint  `gorm:"index" json:"privateCustomerId"`

	ServiceAddress string `gorm:"not null" json:"serviceAddress"`
	CompanyID      uint   `gorm:"not null;index" json:"companyId"`
	Trade          string `gorm:"not null" json:"trade"`
	Activity       string `gorm:"not null" json:"activity"`
	Status         string `gorm:"not null;default:'open'" json:"status"`
	ReportText     string `json:"reportText"`

	// Per-job net fee override; nil means the standard fee from the
	// billing settings applies at generation time.
	ReferralFee *decimal.Decimal `gorm:"type:decimal(10,2)" json:"referralFee"`

	CreatedAt time.Time `json:"createdAt"`

	Company         Company          `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	PropertyManager *PropertyManager `gorm:"foreignKey:PropertyManagerID" json:"propertyManager,omitempty"`
	PrivateCustomer *PrivateCustomer `gorm:"foreignKey:PrivateCustomerID" json:"privateCustomer,omitempty"`
}

// Assign the next sequential job number. Sequential display numbers are
// immutable once assigned, so only new rows get one.
func (j *Job) BeforeCreate(tx *gorm.DB) (err error) {
	if j.JobNumber != 0 {
		return nil
	}
	var max uint
	if err := tx.Model(&Job{}).Select("COALESCE(MAX(job_number), 0)").Scan(&max).Error; err != nil {
		return err
	}
	j.JobNumber = max + 1
	return nil
}
