package models

import "time"

// PrivateCustomer is a direct (non-managed) referral source.
type PrivateCustomer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `gorm:"not null" json:"address"`
	Phone     string    `gorm:"not null" json:"phone"`
	Email     string    `gorm:"not null" json:"email"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`

	Jobs []Job `gorm:"foreignKey:PrivateCustomerID" json:"-"`
}
