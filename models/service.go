package models

import (
	"time"

	"gorm.io/gorm"
)

// Service represents one utility-provisioning workflow instance attached to a
// construction project. Its status advances through the ServiceTypeStatus
// sequence for its type until a final status is reached.
type Service struct {
	ID        int            `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ConstructionID int          `gorm:"not null;index" json:"construction_id"`
	Construction   Construction `gorm:"foreignKey:ConstructionID" json:"construction,omitempty"`

	ServiceTypeID int         `gorm:"not null;index" json:"service_type_id"`
	ServiceType   ServiceType `gorm:"foreignKey:ServiceTypeID" json:"service_type,omitempty"`

	ServiceStatusID int           `gorm:"not null;index" json:"service_status_id"`
	ServiceStatus   ServiceStatus `gorm:"foreignKey:ServiceStatusID" json:"service_status,omitempty"`

	// Status the service occupied before entering an incidence, used to
	// resume once the incidence is resolved
	PreviousStatusID *int           `json:"previous_status_id,omitempty"`
	PreviousStatus   *ServiceStatus `gorm:"foreignKey:PreviousStatusID" json:"previous_status,omitempty"`

	// Distributor handling the connection, when known (scopes which
	// documents are required)
	DistributorID *int         `gorm:"index" json:"distributor_id,omitempty"`
	Distributor   *Distributor `gorm:"foreignKey:DistributorID" json:"distributor,omitempty"`

	// Free-text comment editable by staff or client (sanitized on write)
	Comment *string `gorm:"type:text" json:"comment,omitempty"`

	// When true the client manages the provisioning themselves and the
	// only_self_managed document requirements apply through a separate path
	SelfManaged bool `gorm:"default:false" json:"self_managed"`

	// Relationships
	Documents          []ServiceDocument   `gorm:"foreignKey:ServiceID" json:"documents,omitempty"`
	IncidenceDocuments []IncidenceDocument `gorm:"foreignKey:ServiceID" json:"incidence_documents,omitempty"`
}

// TableName specifies the table name for Service model
func (Service) TableName() string {
	return "services"
}

// HasPreviousStatus checks whether the service recorded a status to resume to
func (s *Service) HasPreviousStatus() bool {
	return s.PreviousStatusID != nil
}
