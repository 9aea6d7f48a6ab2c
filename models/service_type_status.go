package models

// ServiceTypeStatus binds a ServiceStatus to a ServiceType with an order
// position, defining the progression sequence for that type. A NULL
// ServiceTypeID means the row applies to every service type (common statuses
// interleave with type-specific ones by order).
type ServiceTypeStatus struct {
	ID int `gorm:"primarykey" json:"id"`

	// NULL = common row, applies to all service types
	ServiceTypeID *int         `gorm:"index" json:"service_type_id"`
	ServiceType   *ServiceType `gorm:"foreignKey:ServiceTypeID" json:"service_type,omitempty"`

	ServiceStatusID int           `gorm:"not null;index" json:"service_status_id"`
	ServiceStatus   ServiceStatus `gorm:"foreignKey:ServiceStatusID" json:"service_status,omitempty"`

	// Position in the progression sequence; rows for a type must be totally
	// ordered by this column
	Orden int `gorm:"column:orden;not null" json:"orden"`

	// Optional per-binding overrides of the status behavior flags.
	// When nil, the flag on the ServiceStatus row applies.
	IsIncidence        *bool `json:"is_incidence,omitempty"`
	IsFinal            *bool `json:"is_final,omitempty"`
	RequiresUserAction *bool `json:"requires_user_action,omitempty"`
}

// TableName specifies the table name for ServiceTypeStatus model
func (ServiceTypeStatus) TableName() string {
	return "service_type_statuses"
}

// EffectiveIsIncidence returns the binding override when present, otherwise
// the flag from the status row
func (s *ServiceTypeStatus) EffectiveIsIncidence() bool {
	if s.IsIncidence != nil {
		return *s.IsIncidence
	}
	return s.ServiceStatus.IsIncidence
}

// EffectiveIsFinal returns the binding override when present, otherwise the
// flag from the status row
func (s *ServiceTypeStatus) EffectiveIsFinal() bool {
	if s.IsFinal != nil {
		return *s.IsFinal
	}
	return s.ServiceStatus.IsFinal
}

// EffectiveRequiresUserAction returns the binding override when present,
// otherwise the flag from the status row
func (s *ServiceTypeStatus) EffectiveRequiresUserAction() bool {
	if s.RequiresUserAction != nil {
		return *s.RequiresUserAction
	}
	return s.ServiceStatus.RequiresUserAction
}
