package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction represents the type of operation performed
type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionDownload     AuditAction = "DOWNLOAD"      // Document downloaded
	AuditActionStatusChange AuditAction = "STATUS_CHANGE" // Service status written
	AuditActionApprove      AuditAction = "APPROVE"       // Document marked as provided
)

// AuditLog represents an immutable record of a data operation
type AuditLog struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_audit_created_at" json:"created_at"`

	// Actor identification (denormalized, there is no local user table)
	ActorName string `json:"actor_name,omitempty"`

	// Target resource
	ResourceType string `gorm:"not null;index:idx_audit_resource" json:"resource_type"` // e.g., "Service", "ServiceDocument"
	ResourceID   string `gorm:"not null;index:idx_audit_resource" json:"resource_id"`
	ResourceName string `json:"resource_name,omitempty"`

	// Operation details
	Action      AuditAction `gorm:"not null;index:idx_audit_action" json:"action"`
	Description string      `gorm:"type:text" json:"description,omitempty"`

	// Change tracking (for UPDATE operations), JSON encoded
	OldValues string `gorm:"type:text" json:"old_values,omitempty"`
	NewValues string `gorm:"type:text" json:"new_values,omitempty"`

	// Request metadata
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// BeforeCreate generates UUID
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// BeforeUpdate prevents modification of audit logs (immutability)
func (a *AuditLog) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// BeforeDelete prevents deletion of audit logs (immutability)
func (a *AuditLog) BeforeDelete(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}
