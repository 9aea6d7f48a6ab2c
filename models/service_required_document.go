package models

// ServiceRequiredDocument binds a DocumentationType to a ServiceType,
// optionally scoped to a distributor. The automatic status progression only
// advances a service once every applicable required document has been
// provided. Reference/config data.
type ServiceRequiredDocument struct {
	ID int `gorm:"primarykey" json:"id"`

	ServiceTypeID int         `gorm:"not null;index" json:"service_type_id"`
	ServiceType   ServiceType `gorm:"foreignKey:ServiceTypeID" json:"service_type,omitempty"`

	DocumentationTypeID int               `gorm:"not null;index" json:"documentation_type_id"`
	DocumentationType   DocumentationType `gorm:"foreignKey:DocumentationTypeID" json:"documentation_type,omitempty"`

	// NULL = required regardless of distributor
	DistributorID *int         `gorm:"index" json:"distributor_id,omitempty"`
	Distributor   *Distributor `gorm:"foreignKey:DistributorID" json:"distributor,omitempty"`

	// When true the document is only required when the client self-manages
	// the provisioning; it never counts against the automatic check
	OnlySelfManaged bool `gorm:"default:false" json:"only_self_managed"`
}

// TableName specifies the table name for ServiceRequiredDocument model
func (ServiceRequiredDocument) TableName() string {
	return "service_required_documents"
}
