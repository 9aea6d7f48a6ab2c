package services

import (
	"encoding/json"
	"testing"
	"time"

	"obra_flow_app_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.AutoMigrate(&models.AuditLog{})
	return db
}

func TestLogAuditEvent(t *testing.T) {
	db := setupAuditTestDB(t)

	ctx := AuditContext{
		ActorName: "backoffice@example.com",
		IPAddress: "10.0.0.5",
		UserAgent: "test-agent",
	}

	oldValues := map[string]interface{}{"service_status_id": 1}
	newValues := map[string]interface{}{"service_status_id": 8}

	LogAuditEvent(db, ctx, models.AuditActionStatusChange,
		"service", "47", "Luz", "Automatic advancement", oldValues, newValues)

	// The write happens in a goroutine
	var entry models.AuditLog
	assert.Eventually(t, func() bool {
		return db.First(&entry).Error == nil
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "backoffice@example.com", entry.ActorName)
	assert.Equal(t, models.AuditActionStatusChange, entry.Action)
	assert.Equal(t, "service", entry.ResourceType)
	assert.Equal(t, "47", entry.ResourceID)
	assert.NotEmpty(t, entry.ID)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(entry.NewValues), &decoded))
	assert.EqualValues(t, 8, decoded["service_status_id"])
}

func TestAuditLogImmutability(t *testing.T) {
	db := setupAuditTestDB(t)

	entry := models.AuditLog{
		ActorName:    "backoffice@example.com",
		ResourceType: "service",
		ResourceID:   "47",
		Action:       models.AuditActionUpdate,
	}
	assert.NoError(t, db.Create(&entry).Error)

	// Updates and deletes are rejected by the model hooks
	err := db.Model(&entry).Update("actor_name", "intruder").Error
	assert.Error(t, err)

	err = db.Delete(&entry).Error
	assert.Error(t, err)

	var count int64
	db.Model(&models.AuditLog{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetResourceAuditHistory(t *testing.T) {
	db := setupAuditTestDB(t)

	for i := 0; i < 2; i++ {
		assert.NoError(t, db.Create(&models.AuditLog{
			ResourceType: "service",
			ResourceID:   "47",
			Action:       models.AuditActionStatusChange,
		}).Error)
	}
	assert.NoError(t, db.Create(&models.AuditLog{
		ResourceType: "service",
		ResourceID:   "48",
		Action:       models.AuditActionStatusChange,
	}).Error)

	logs, err := GetResourceAuditHistory(db, "service", "47")
	assert.NoError(t, err)
	assert.Len(t, logs, 2)
}
