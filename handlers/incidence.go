package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"obra_flow_app_go/db"
	"obra_flow_app_go/middleware"
	"obra_flow_app_go/models"
	"obra_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

type flagIncidenceRequest struct {
	ServiceStatusID int `json:"service_status_id"`
}

// FlagIncidenceHandler moves a service into an incidence status (back-office)
func FlagIncidenceHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var req flagIncidenceRequest
	if err := c.Bind(&req); err != nil || req.ServiceStatusID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "service_status_id is required")
	}

	if err := services.FlagIncidence(db.DB, serviceID, req.ServiceStatusID); err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Service not found")
		case errors.Is(err, services.ErrStatusNotFound):
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown status")
		case errors.Is(err, services.ErrStatusNotIncidence):
			return echo.NewHTTPError(http.StatusBadRequest, "Status is not an incidence status")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to flag incidence")
		}
	}

	service, err := services.GetServiceByID(db.DB, serviceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch service")
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionStatusChange,
		"service", itoa(serviceID), service.ServiceStatus.Name, "Incidence flagged", nil, service)

	return c.JSON(http.StatusOK, service)
}

// RespondIncidenceHandler records the client's reply to an incidence and
// moves the service to the under-review status
func RespondIncidenceHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	service, err := services.GetServiceByID(db.DB, serviceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Service not found")
	}

	response := services.IncidenceResponse{}

	if v, err := strconv.Atoi(c.FormValue("documentation_type_id")); err == nil && v > 0 {
		response.DocumentationTypeID = &v
	}
	if text := c.FormValue("content_text"); text != "" {
		response.ContentText = &text
	}
	if link := c.FormValue("link"); link != "" {
		response.Link = &link
	}

	if file, err := c.FormFile("file"); err == nil {
		if err := services.ValidateDocumentUpload(file); err != nil {
			if errors.Is(err, services.ErrFileTooLarge) {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
			}
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		key := services.GenerateIncidenceDocumentKey(service.ConstructionID, serviceID, file.Filename)
		result, err := services.Storage.Upload(context.Background(), file, key)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store file")
		}
		response.FileOriginalName = file.Filename
		response.FilePath = result.Key
		response.FileSize = file.Size
		response.MimeType = file.Header.Get("Content-Type")
	}

	if response.FilePath == "" && response.ContentText == nil && response.Link == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "A file, text or link is required")
	}

	doc, err := services.ResolveIncidence(db.DB, Engine.IDs, serviceID, response)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotIncidence) {
			return echo.NewHTTPError(http.StatusConflict, "Service is not in an incidence status")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to record response")
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionCreate,
		"incidence_document", itoa(doc.ID), doc.FileOriginalName, "Incidence response recorded", nil, doc)

	return c.JSON(http.StatusCreated, doc)
}

// RestoreServiceStatusHandler returns a service to its pre-incidence status
func RestoreServiceStatusHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	if err := services.RestorePreviousStatus(db.DB, serviceID); err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Service not found")
		case errors.Is(err, services.ErrNoPreviousStatus):
			return echo.NewHTTPError(http.StatusConflict, "Service has no previous status to restore")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to restore status")
		}
	}

	service, err := services.GetServiceByID(db.DB, serviceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch service")
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionStatusChange,
		"service", itoa(serviceID), service.ServiceStatus.Name, "Pre-incidence status restored", nil, service)

	return c.JSON(http.StatusOK, service)
}

// GetIncidenceDocumentsHandler lists a service's incidence responses
func GetIncidenceDocumentsHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := services.GetServiceByID(db.DB, serviceID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Service not found")
	}

	docs, err := services.GetIncidenceDocuments(db.DB, serviceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch incidence documents")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"documents": docs})
}
