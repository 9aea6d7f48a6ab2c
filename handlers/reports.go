package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"obra_flow_app_go/db"
	"obra_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

// DownloadConstructionReportHandler generates and streams the Excel summary
// of a construction's services and documents
func DownloadConstructionReportHandler(c echo.Context) error {
	constructionID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	buf, err := services.GenerateConstructionReport(db.DB, Engine.IDs, constructionID)
	if err != nil {
		if errors.Is(err, services.ErrConstructionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Construction not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate report")
	}

	filename := fmt.Sprintf("obra_%d_servicios.xlsx", constructionID)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
