package handlers

import (
	"net/http"

	"obra_flow_app_go/db"
	"obra_flow_app_go/models"
	"obra_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetServiceTypesHandler lists the available service types
func GetServiceTypesHandler(c echo.Context) error {
	var types []models.ServiceType
	if err := db.DB.Order("id ASC").Find(&types).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch service types")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"service_types": types})
}

// GetServiceStatusesHandler lists every status in the dictionary
func GetServiceStatusesHandler(c echo.Context) error {
	var statuses []models.ServiceStatus
	if err := db.DB.Order("id ASC").Find(&statuses).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch statuses")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"statuses": statuses})
}

// GetStatusCatalogHandler returns the ordered progression for one service
// type, with the effective behavior flags resolved per row
func GetStatusCatalogHandler(c echo.Context) error {
	serviceTypeID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	catalog, err := services.GetOrderedStatuses(db.DB, serviceTypeID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch catalog")
	}

	type catalogEntry struct {
		Position           int    `json:"position"`
		ServiceStatusID    int    `json:"service_status_id"`
		Name               string `json:"name"`
		Orden              int    `json:"orden"`
		IsIncidence        bool   `json:"is_incidence"`
		IsFinal            bool   `json:"is_final"`
		RequiresUserAction bool   `json:"requires_user_action"`
		Common             bool   `json:"common"`
	}

	entries := make([]catalogEntry, len(catalog))
	for i, row := range catalog {
		entries[i] = catalogEntry{
			Position:           i,
			ServiceStatusID:    row.ServiceStatusID,
			Name:               row.ServiceStatus.Name,
			Orden:              row.Orden,
			IsIncidence:        row.EffectiveIsIncidence(),
			IsFinal:            row.EffectiveIsFinal(),
			RequiresUserAction: row.EffectiveRequiresUserAction(),
			Common:             row.ServiceTypeID == nil,
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"catalog": entries})
}

// GetRequiredDocumentsHandler lists the document requirements for a type
func GetRequiredDocumentsHandler(c echo.Context) error {
	serviceTypeID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var required []models.ServiceRequiredDocument
	err = db.DB.Where("service_type_id = ?", serviceTypeID).
		Preload("DocumentationType").
		Preload("Distributor").
		Find(&required).Error
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch required documents")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"required_documents": required})
}
