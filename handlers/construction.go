package handlers

import (
	"errors"
	"net/http"

	"obra_flow_app_go/db"
	"obra_flow_app_go/middleware"
	"obra_flow_app_go/models"
	"obra_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

type constructionRequest struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Province       string `json:"province"`
	PostalCode     string `json:"postal_code"`
	CompanyName    string `json:"company_name"`
	ContactEmail   string `json:"contact_email"`
	ServiceTypeIDs []int  `json:"service_type_ids"`
}

// CreateConstructionHandler runs the setup wizard: a construction plus one
// service per requested type
func CreateConstructionHandler(c echo.Context) error {
	var req constructionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" || req.Address == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name and address are required")
	}

	construction, err := services.CreateConstructionWithServices(db.DB, Engine.IDs, services.ConstructionInput{
		Name:           services.SanitizeText(req.Name),
		Address:        services.SanitizeText(req.Address),
		City:           services.SanitizeText(req.City),
		Province:       services.SanitizeText(req.Province),
		PostalCode:     req.PostalCode,
		CompanyName:    services.SanitizeText(req.CompanyName),
		ContactEmail:   req.ContactEmail,
		ServiceTypeIDs: req.ServiceTypeIDs,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoServiceTypes) {
			return echo.NewHTTPError(http.StatusBadRequest, "At least one service type is required")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionCreate,
		"construction", itoa(construction.ID), construction.Name, "Construction created", nil, construction)

	return c.JSON(http.StatusCreated, construction)
}

// GetConstructionsHandler lists constructions with keyword filter and
// pagination
func GetConstructionsHandler(c echo.Context) error {
	page, limit := pagination(c)

	constructions, total, err := services.GetConstructions(db.DB, services.ConstructionFilters{
		Keyword: c.QueryParam("keyword"),
	}, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch constructions")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"constructions": constructions,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

// GetConstructionHandler returns one construction with its services
func GetConstructionHandler(c echo.Context) error {
	constructionID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	construction, err := services.GetConstructionByID(db.DB, constructionID)
	if err != nil {
		if errors.Is(err, services.ErrConstructionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Construction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch construction")
	}

	return c.JSON(http.StatusOK, construction)
}

// GetConstructionProgressHandler recomputes document completion for every
// service of the construction
func GetConstructionProgressHandler(c echo.Context) error {
	constructionID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := services.GetConstructionByID(db.DB, constructionID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Construction not found")
	}

	progress, err := services.GetConstructionProgress(db.DB, Engine.IDs, constructionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to compute progress")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"progress": progress})
}

// UpdateConstructionHandler updates a construction's details
func UpdateConstructionHandler(c echo.Context) error {
	constructionID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	var req constructionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	old, err := services.GetConstructionByID(db.DB, constructionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Construction not found")
	}

	err = services.UpdateConstruction(db.DB, constructionID, services.ConstructionInput{
		Name:        services.SanitizeText(req.Name),
		Address:     services.SanitizeText(req.Address),
		City:        services.SanitizeText(req.City),
		Province:    services.SanitizeText(req.Province),
		PostalCode:   req.PostalCode,
		CompanyName:  services.SanitizeText(req.CompanyName),
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		if errors.Is(err, services.ErrConstructionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Construction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update construction")
	}

	updated, err := services.GetConstructionByID(db.DB, constructionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch construction")
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionUpdate,
		"construction", itoa(constructionID), updated.Name, "Construction updated", old, updated)

	return c.JSON(http.StatusOK, updated)
}

// DeleteConstructionHandler soft-deletes a construction and its services
func DeleteConstructionHandler(c echo.Context) error {
	constructionID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	construction, err := services.GetConstructionByID(db.DB, constructionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Construction not found")
	}

	if err := services.DeleteConstruction(db.DB, constructionID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete construction")
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionDelete,
		"construction", itoa(constructionID), construction.Name, "Construction deleted", construction, nil)

	return c.NoContent(http.StatusNoContent)
}
