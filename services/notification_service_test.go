package services

import (
	"testing"

	"obra_flow_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestNotificationService(t *testing.T) {
	db := setupWorkflowTestDB(t)
	svc := NewNotificationService(db)
	ids := DefaultStatusIDs()

	createServiceStatus(t, db, ids.CollectingDocuments, "Recopilación de documentación")
	service := createWorkflowService(t, db, 9, ids.CollectingDocuments)
	constructionID := service.ConstructionID

	t.Run("Create and Get Unread", func(t *testing.T) {
		err := svc.CreateNotification(&models.Notification{
			ConstructionID: constructionID,
			ServiceID:      &service.ID,
			Type:           models.NotificationTypeStatusChange,
			Title:          "Estado actualizado",
			Message:        "Recopilación de documentación → Solicitud enviada",
		})
		assert.NoError(t, err)

		unread, err := svc.GetUnreadNotifications(constructionID)
		assert.NoError(t, err)
		assert.Len(t, unread, 1)
		assert.False(t, unread[0].IsRead())

		count, err := svc.GetNotificationCount(constructionID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Mark As Read", func(t *testing.T) {
		unread, err := svc.GetUnreadNotifications(constructionID)
		assert.NoError(t, err)
		assert.NotEmpty(t, unread)

		assert.NoError(t, svc.MarkAsRead(unread[0].ID, constructionID))

		count, err := svc.GetNotificationCount(constructionID)
		assert.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Mark All As Read", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			err := svc.CreateNotification(&models.Notification{
				ConstructionID: constructionID,
				Type:           models.NotificationTypeUserAction,
				Title:          "Acción necesaria",
			})
			assert.NoError(t, err)
		}

		assert.NoError(t, svc.MarkAllAsRead(constructionID))

		count, err := svc.GetNotificationCount(constructionID)
		assert.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Scoped To Construction", func(t *testing.T) {
		err := svc.CreateNotification(&models.Notification{
			ConstructionID: constructionID + 100,
			Type:           models.NotificationTypeIncidence,
			Title:          "Incidencia",
		})
		assert.NoError(t, err)

		count, err := svc.GetNotificationCount(constructionID)
		assert.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestNotifyStatusChange(t *testing.T) {
	db := setupWorkflowTestDB(t)
	svc := NewNotificationService(db)
	ids := DefaultStatusIDs()

	createServiceStatus(t, db, ids.CollectingDocuments, "Recopilación de documentación")
	service := createWorkflowService(t, db, 9, ids.CollectingDocuments)

	loaded, err := GetServiceByID(db, service.ID)
	assert.NoError(t, err)

	assert.NoError(t, svc.NotifyStatusChange(loaded, "Recopilación de documentación", "Solicitud enviada"))

	unread, err := svc.GetUnreadNotifications(service.ConstructionID)
	assert.NoError(t, err)
	assert.Len(t, unread, 1)
	assert.Equal(t, models.NotificationTypeStatusChange, unread[0].Type)
	assert.Contains(t, unread[0].Message, "Solicitud enviada")
}
