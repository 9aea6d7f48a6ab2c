package handlers

import (
	"net/http"

	"obra_flow_app_go/db"
	"obra_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetResourceAuditHistoryHandler returns the audit trail of one resource
func GetResourceAuditHistoryHandler(c echo.Context) error {
	resourceType := c.Param("type")
	resourceID := c.Param("id")
	if resourceType == "" || resourceID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Resource type and id are required")
	}

	logs, err := services.GetResourceAuditHistory(db.DB, resourceType, resourceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch audit history")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"logs": logs})
}
