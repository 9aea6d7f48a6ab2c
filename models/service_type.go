package models

// ServiceType represents a category of utility service offering
// (e.g. "Luz - Obra", "Agua - Definitiva"). Immutable reference data.
type ServiceType struct {
	ID   int    `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	// Raw labels used only when exporting the service to the CRM
	Servicio  string `json:"servicio"`
	Acometida string `json:"acometida"`
}

// TableName specifies the table name for ServiceType model
func (ServiceType) TableName() string {
	return "service_types"
}
