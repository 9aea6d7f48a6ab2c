package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"obra_flow_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestNotificationHandlers(t *testing.T) {
	testDB := setupTestDB(t)
	service := createTestService(t, testDB, 9)
	constructionID := service.ConstructionID

	assert.NoError(t, testDB.Create(&models.Notification{
		ConstructionID: constructionID,
		ServiceID:      &service.ID,
		Type:           models.NotificationTypeStatusChange,
		Title:          "Estado actualizado",
		Message:        "Recopilación de documentación → Solicitud enviada",
	}).Error)

	// List unread
	_, c, rec := setupEcho(http.MethodGet, "/", nil)
	c.SetPath("/api/constructions/:id/notifications")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(constructionID))

	assert.NoError(t, GetNotificationsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Notifications []models.Notification `json:"notifications"`
		UnreadCount   int64                 `json:"unread_count"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int64(1), response.UnreadCount)
	assert.Len(t, response.Notifications, 1)

	// Mark one as read
	notificationID := response.Notifications[0].ID
	_, c, rec = setupEcho(http.MethodPut, "/", nil)
	c.SetPath("/api/constructions/:id/notifications/:notificationId/read")
	c.SetParamNames("id", "notificationId")
	c.SetParamValues(strconv.Itoa(constructionID), strconv.Itoa(notificationID))

	assert.NoError(t, MarkNotificationReadHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var remaining int64
	testDB.Model(&models.Notification{}).
		Where("construction_id = ? AND read_at IS NULL", constructionID).
		Count(&remaining)
	assert.Zero(t, remaining)
}

func TestMarkAllNotificationsReadHandler(t *testing.T) {
	testDB := setupTestDB(t)
	service := createTestService(t, testDB, 9)
	constructionID := service.ConstructionID

	for i := 0; i < 3; i++ {
		assert.NoError(t, testDB.Create(&models.Notification{
			ConstructionID: constructionID,
			Type:           models.NotificationTypeUserAction,
			Title:          "Acción necesaria",
		}).Error)
	}

	_, c, rec := setupEcho(http.MethodPut, "/", nil)
	c.SetPath("/api/constructions/:id/notifications/read-all")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(constructionID))

	assert.NoError(t, MarkAllNotificationsReadHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var remaining int64
	testDB.Model(&models.Notification{}).
		Where("construction_id = ? AND read_at IS NULL", constructionID).
		Count(&remaining)
	assert.Zero(t, remaining)
}
