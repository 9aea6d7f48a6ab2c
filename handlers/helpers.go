package handlers

import (
	"net/http"
	"strconv"

	"obra_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// Engine is the shared status transition engine, wired in main with the
// observer that emits notifications and webhooks
var Engine *services.TransitionEngine

// intParam parses a numeric path parameter
func intParam(c echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return value, nil
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

// pagination reads page/limit query parameters with sane defaults
func pagination(c echo.Context) (page, limit int) {
	page = 1
	limit = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return page, limit
}
