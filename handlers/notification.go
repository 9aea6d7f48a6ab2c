package handlers

import (
	"net/http"

	"obra_flow_app_go/db"
	"obra_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetNotificationsHandler lists unread notifications for a construction
func GetNotificationsHandler(c echo.Context) error {
	constructionID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	svc := services.NewNotificationService(db.DB)

	notifications, err := svc.GetUnreadNotifications(constructionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications")
	}
	count, err := svc.GetNotificationCount(constructionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count notifications")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"unread_count":  count,
	})
}

// MarkNotificationReadHandler marks one notification as read
func MarkNotificationReadHandler(c echo.Context) error {
	constructionID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	notificationID, err := intParam(c, "notificationId")
	if err != nil {
		return err
	}

	svc := services.NewNotificationService(db.DB)
	if err := svc.MarkAsRead(notificationID, constructionID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notification as read")
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsReadHandler clears the unread set for a construction
func MarkAllNotificationsReadHandler(c echo.Context) error {
	constructionID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	svc := services.NewNotificationService(db.DB)
	if err := svc.MarkAllAsRead(constructionID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notifications as read")
	}

	return c.NoContent(http.StatusNoContent)
}
