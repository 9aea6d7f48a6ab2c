package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"obra_flow_app_go/db"
	"obra_flow_app_go/middleware"
	"obra_flow_app_go/models"
	"obra_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetServicesHandler lists services with filters and pagination
func GetServicesHandler(c echo.Context) error {
	page, limit := pagination(c)

	filters := services.ServiceFilters{}
	if v, err := strconv.Atoi(c.QueryParam("construction_id")); err == nil {
		filters.ConstructionID = v
	}
	if v, err := strconv.Atoi(c.QueryParam("service_type_id")); err == nil {
		filters.ServiceTypeID = v
	}
	if v, err := strconv.Atoi(c.QueryParam("service_status_id")); err == nil {
		filters.ServiceStatusID = v
	}
	if v, err := time.Parse("2006-01-02", c.QueryParam("date_from")); err == nil {
		filters.DateFrom = &v
	}
	if v, err := time.Parse("2006-01-02", c.QueryParam("date_to")); err == nil {
		filters.DateTo = &v
	}

	results, total, err := services.GetServices(db.DB, filters, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch services")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"services": results,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetServiceHandler returns one service with its documents and status
func GetServiceHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	service, err := services.GetServiceByID(db.DB, serviceID)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Service not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch service")
	}

	return c.JSON(http.StatusOK, service)
}

// GetServiceCompletionHandler reports document completion without touching
// the status
func GetServiceCompletionHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	completion, err := services.CheckServiceDocuments(db.DB, Engine.IDs, serviceID)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Service not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check documents")
	}

	return c.JSON(http.StatusOK, completion)
}

// RecheckServiceHandler re-runs the automatic advancement for one service.
// Used by back-office after fixing catalog or document data.
func RecheckServiceHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	result, err := Engine.TryAdvance(serviceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Service not found")
		case errors.Is(err, services.ErrStatusNotInCatalog):
			// Misconfigured catalog, not a client mistake
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to advance service")
		}
	}

	if result.Advanced {
		services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionStatusChange,
			"service", itoa(serviceID), result.ToStatus, "Automatic advancement",
			map[string]interface{}{"service_status_id": result.FromStatusID},
			map[string]interface{}{"service_status_id": result.ToStatusID})
	}

	return c.JSON(http.StatusOK, result)
}

// RecheckConstructionHandler re-runs the advancement for every service of a
// construction. The listing page calls this before rendering progress so a
// document approved out of band still moves the service forward.
func RecheckConstructionHandler(c echo.Context) error {
	constructionID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := services.GetConstructionByID(db.DB, constructionID); err != nil {
		if errors.Is(err, services.ErrConstructionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Construction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch construction")
	}

	constructionServices, err := services.GetServicesByConstruction(db.DB, constructionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch services")
	}

	results := make(map[string]*services.TransitionResult, len(constructionServices))
	for _, svc := range constructionServices {
		result, err := Engine.TryAdvance(svc.ID)
		if err != nil {
			// One broken service must not block the rest of the sweep
			results[itoa(svc.ID)] = &services.TransitionResult{Reason: services.TransitionReason("error: " + err.Error())}
			continue
		}
		if result.Advanced {
			services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionStatusChange,
				"service", itoa(svc.ID), result.ToStatus, "Automatic advancement",
				map[string]interface{}{"service_status_id": result.FromStatusID},
				map[string]interface{}{"service_status_id": result.ToStatusID})
		}
		results[itoa(svc.ID)] = result
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"results": results})
}

type serviceCommentRequest struct {
	Comment string `json:"comment"`
}

// UpdateServiceCommentHandler sets the free-text comment on a service
func UpdateServiceCommentHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var req serviceCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := services.UpdateServiceComment(db.DB, serviceID, req.Comment); err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Service not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update comment")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Comment updated"})
}

type serviceStatusRequest struct {
	ServiceStatusID int `json:"service_status_id"`
}

// SetServiceStatusHandler writes a status directly (back-office action)
func SetServiceStatusHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var req serviceStatusRequest
	if err := c.Bind(&req); err != nil || req.ServiceStatusID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "service_status_id is required")
	}

	old, err := services.GetServiceByID(db.DB, serviceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Service not found")
	}

	if err := services.SetServiceStatus(db.DB, serviceID, req.ServiceStatusID); err != nil {
		switch {
		case errors.Is(err, services.ErrStatusNotFound):
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown status")
		case errors.Is(err, services.ErrServiceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Service not found")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update status")
		}
	}

	updated, err := services.GetServiceByID(db.DB, serviceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch service")
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionStatusChange,
		"service", itoa(serviceID), updated.ServiceStatus.Name, "Manual status change",
		map[string]interface{}{"service_status_id": old.ServiceStatusID},
		map[string]interface{}{"service_status_id": updated.ServiceStatusID})

	return c.JSON(http.StatusOK, updated)
}
