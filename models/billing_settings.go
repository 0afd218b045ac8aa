package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillingSettings is a single mutable row read at invoice generation
// time. Item amounts are captured when billed, so changing a fee here
// only affects future generation runs.
type BillingSettings struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	StandardFee     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"standardFee"`     // net, per referred job
	CancellationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cancellationFee"` // net, per cancelled job
	VATRate         decimal.Decimal `gorm:"type:decimal(5,4);not null" json:"vatRate"`          // e.g. 0.20
}

// DefaultBillingSettings returns the seed row used on first boot.
func DefaultBillingSettings() BillingSettings {
	return BillingSettings{
		StandardFee:     decimal.NewFromFloat(49),
		CancellationFee: decimal.NewFromFloat(14.90),
		VATRate:         decimal.NewFromFloat(0.20),
	}
}

// SeedBillingSettings creates the settings row if none exists yet.
func SeedBillingSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&BillingSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	settings := DefaultBillingSettings()
	return db.Create(&settings).Error
}
