package services

import (
	"obra_flow_app_go/models"
	"time"

	"gorm.io/gorm"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (s *NotificationService) GetUnreadNotifications(constructionID int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.Where("construction_id = ? AND read_at IS NULL", constructionID).
		Order("created_at DESC").
		Limit(20).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) MarkAsRead(notificationID, constructionID int) error {
	now := time.Now()
	return s.DB.Model(&models.Notification{}).
		Where("id = ? AND construction_id = ?", notificationID, constructionID).
		Update("read_at", now).Error
}

func (s *NotificationService) MarkAllAsRead(constructionID int) error {
	now := time.Now()
	return s.DB.Model(&models.Notification{}).
		Where("construction_id = ? AND read_at IS NULL", constructionID).
		Update("read_at", now).Error
}

func (s *NotificationService) GetNotificationCount(constructionID int) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("construction_id = ? AND read_at IS NULL", constructionID).
		Count(&count).Error
	return count, err
}

func (s *NotificationService) CreateNotification(notification *models.Notification) error {
	return s.DB.Create(notification).Error
}

// NotifyStatusChange records an in-app notification for an automatic or
// manual status change on a service
func (s *NotificationService) NotifyStatusChange(service *models.Service, fromStatus, toStatus string) error {
	return s.CreateNotification(&models.Notification{
		ConstructionID: service.ConstructionID,
		ServiceID:      &service.ID,
		Type:           models.NotificationTypeStatusChange,
		Title:          "Estado actualizado: " + service.ServiceType.Name,
		Message:        fromStatus + " → " + toStatus,
	})
}

// NotifyIncidence records an in-app notification when an incidence is opened
func (s *NotificationService) NotifyIncidence(service *models.Service, statusName string) error {
	return s.CreateNotification(&models.Notification{
		ConstructionID: service.ConstructionID,
		ServiceID:      &service.ID,
		Type:           models.NotificationTypeIncidence,
		Title:          "Incidencia: " + service.ServiceType.Name,
		Message:        statusName,
	})
}
