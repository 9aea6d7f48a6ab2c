package models

import (
	"time"

	"gorm.io/gorm"
)

// Construction represents a construction project whose utility services are
// being provisioned (electricity, water, gas, telecom)
type Construction struct {
	ID        int            `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name       string `gorm:"not null" json:"name"`
	Address    string `gorm:"not null" json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`

	// Client company the project belongs to
	CompanyName string `json:"company_name"`

	// Where user-action and incidence emails go; empty disables them
	ContactEmail string `json:"contact_email"`

	// Relationships
	Services []Service `gorm:"foreignKey:ConstructionID" json:"services,omitempty"`
}

// TableName specifies the table name for Construction model
func (Construction) TableName() string {
	return "constructions"
}
