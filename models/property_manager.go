package models

import "time"

// PropertyManager (Hausverwaltung) refers jobs on behalf of managed buildings.
type PropertyManager struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `gorm:"not null" json:"address"`
	Phone     string    `gorm:"not null" json:"phone"`
	Email     string    `gorm:"not null" json:"email"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`

	Jobs []Job `gorm:"foreignKey:PropertyManagerID" json:"-"`
}
