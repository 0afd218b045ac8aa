package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Company is a partner trade business (Betrieb) that jobs are referred to
// and that receives the monthly commission invoice.
type Company struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CompanyName string      `gorm:"not null" json:"companyName"`
	ContactName string      `gorm:"not null" json:"contactName"`
	Address     string      `gorm:"not null" json:"address"`
	Phone       string      `gorm:"not null" json:"phone"`
	Email       string      `gorm:"not null" json:"email"`
	Trades      StringArray `gorm:"type:text;not null" json:"trades"` // ["Installateur", "Elektriker", ...]
	IsActive    bool        `gorm:"default:true;not null" json:"isActive"`
	Notes       string      `json:"notes"`
	CreatedAt   time.Time   `json:"createdAt"`

	Jobs     []Job     `gorm:"foreignKey:CompanyID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:CompanyID" json:"-"`
}

// StringArray stores a string slice as a JSON column
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("type assertion to []byte failed")
	}
}
