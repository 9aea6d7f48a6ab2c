package services

import (
	"encoding/json"
	"log"
	"obra_flow_app_go/models"

	"gorm.io/gorm"
)

// AuditContext contains contextual information for audit logging
type AuditContext struct {
	ActorName string
	IPAddress string
	UserAgent string
}

// LogAuditEvent creates a new audit log entry asynchronously
func LogAuditEvent(
	db *gorm.DB,
	ctx AuditContext,
	action models.AuditAction,
	resourceType string,
	resourceID string,
	resourceName string,
	description string,
	oldValues interface{},
	newValues interface{},
) {
	// Run in goroutine to avoid blocking the request
	go func() {
		var oldJSON, newJSON string

		if oldValues != nil {
			if bytes, err := json.Marshal(oldValues); err == nil {
				oldJSON = string(bytes)
			}
		}

		if newValues != nil {
			if bytes, err := json.Marshal(newValues); err == nil {
				newJSON = string(bytes)
			}
		}

		auditLog := models.AuditLog{
			ActorName:    ctx.ActorName,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			ResourceName: resourceName,
			Action:       action,
			Description:  description,
			OldValues:    oldJSON,
			NewValues:    newJSON,
			IPAddress:    ctx.IPAddress,
			UserAgent:    ctx.UserAgent,
		}

		if err := db.Create(&auditLog).Error; err != nil {
			log.Printf("[AUDIT] Failed to create audit log: %v", err)
		}
	}()
}

// GetResourceAuditHistory retrieves the audit history for a specific resource
func GetResourceAuditHistory(db *gorm.DB, resourceType, resourceID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
