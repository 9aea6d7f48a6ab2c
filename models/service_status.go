package models

// ServiceStatus represents a named stage a service can occupy
// (e.g. "Recopilación de documentación", "Activado"). Reference data.
type ServiceStatus struct {
	ID   int    `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	// Behavior flags
	IsIncidence        bool `json:"is_incidence"`         // Blocks normal flow until resolved
	IsFinal            bool `json:"is_final"`             // Terminal, no further transition
	RequiresUserAction bool `json:"requires_user_action"` // Client must supply something before progress
}

// TableName specifies the table name for ServiceStatus model
func (ServiceStatus) TableName() string {
	return "service_statuses"
}
