package handlers

import (
	"context"
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

// GetServiceDocumentsHandler lists all documents for a service
func GetServiceDocumentsHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := services.GetServiceByID(db.DB, serviceID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Service not found")
	}

	documents, err := services.GetServiceDocuments(db.DB, serviceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch documents")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"documents": documents})
}

// UploadServiceDocumentHandler handles a document upload: a multipart file,
// a plain-text value, or a link. A re-upload for the same documentation type
// replaces the previous content and resets review.
func UploadServiceDocumentHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}

	service, err := services.GetServiceByID(db.DB, serviceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Service not found")
	}

	documentationTypeID, err := strconv.Atoi(c.FormValue("documentation_type_id"))
	if err != nil || documentationTypeID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "documentation_type_id is required")
	}

	upload := services.DocumentUpload{DocumentationTypeID: documentationTypeID}

	if text := c.FormValue("content_text"); text != "" {
		upload.ContentText = &text
	}
	if link := c.FormValue("link"); link != "" {
		upload.Link = &link
	}

	if file, err := c.FormFile("file"); err == nil {
		if err := services.ValidateDocumentUpload(file); err != nil {
			if errors.Is(err, services.ErrFileTooLarge) {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
			}
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		key := services.GenerateServiceDocumentKey(service.ConstructionID, serviceID, file.Filename)
		result, err := services.Storage.Upload(context.Background(), file, key)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store file")
		}

		upload.FileName = key
		upload.FileOriginalName = file.Filename
		upload.FilePath = result.Key
		upload.FileSize = file.Size
		upload.MimeType = file.Header.Get("Content-Type")
	}

	doc, err := services.UpsertServiceDocument(db.DB, serviceID, upload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyDocument):
			return echo.NewHTTPError(http.StatusBadRequest, "A file, text or link is required")
		case errors.Is(err, services.ErrDocumentationTypeNotFound):
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown documentation type")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save document")
		}
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionCreate,
		"service_document", itoa(doc.ID), doc.FileOriginalName, "Document uploaded", nil, doc)

	return c.JSON(http.StatusCreated, doc)
}

// DownloadServiceDocumentHandler redirects to a signed URL, or streams the
// file when the provider cannot sign
func DownloadServiceDocumentHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	documentID, err := intParam(c, "documentId")
	if err != nil {
		return err
	}

	doc, err := services.GetServiceDocument(db.DB, serviceID, documentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	if doc.FilePath == "" {
		return echo.NewHTTPError(http.StatusNotFound, "Document has no file")
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionDownload,
		"service_document", itoa(doc.ID), doc.FileOriginalName, "Document downloaded", nil, nil)

	if url, err := services.Storage.GetSignedURL(context.Background(), doc.FilePath, 15*time.Minute); err == nil && url != "" {
		return c.Redirect(http.StatusTemporaryRedirect, url)
	}

	reader, contentType, err := services.Storage.Get(context.Background(), doc.FilePath)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read file")
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.FileOriginalName+`"`)
	return c.Stream(http.StatusOK, contentType, reader)
}

type documentReviewRequest struct {
	DocumentStatusID int `json:"document_status_id"`
}

// ReviewServiceDocumentHandler writes a document's review status. Marking it
// provided triggers the automatic advancement check.
func ReviewServiceDocumentHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	documentID, err := intParam(c, "documentId")
	if err != nil {
		return err
	}

	var req documentReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	switch req.DocumentStatusID {
	case models.DocumentStatusPending, models.DocumentStatusRejected, models.DocumentStatusProvided:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown document status")
	}

	doc, err := services.SetDocumentStatus(db.DB, serviceID, documentID, req.DocumentStatusID)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Document not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update document")
	}

	response := map[string]interface{}{"document": doc}

	// Approval may complete the required set and move the service forward
	if req.DocumentStatusID == models.DocumentStatusProvided {
		services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionApprove,
			"service_document", itoa(doc.ID), doc.FileOriginalName, "Document approved", nil, doc)

		result, err := Engine.TryAdvance(serviceID)
		if err != nil {
			if errors.Is(err, services.ErrStatusNotInCatalog) {
				return echo.NewHTTPError(http.StatusConflict, err.Error())
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to advance service")
		}
		response["transition"] = result

		if result.Advanced {
			services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionStatusChange,
				"service", itoa(serviceID), result.ToStatus, "Automatic advancement",
				map[string]interface{}{"service_status_id": result.FromStatusID},
				map[string]interface{}{"service_status_id": result.ToStatusID})
		}
	}

	return c.JSON(http.StatusOK, response)
}

// DeleteServiceDocumentHandler removes a document and its stored file
func DeleteServiceDocumentHandler(c echo.Context) error {
	serviceID, err := intParam(c, "id")
	if err != nil {
		return err
	}
	documentID, err := intParam(c, "documentId")
	if err != nil {
		return err
	}

	doc, err := services.DeleteServiceDocument(db.DB, serviceID, documentID)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Document not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete document")
	}

	if doc.FilePath != "" {
		if err := services.Storage.Delete(context.Background(), doc.FilePath); err != nil {
			c.Logger().Warnf("failed to delete stored file %s: %v", doc.FilePath, err)
		}
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionDelete,
		"service_document", itoa(doc.ID), doc.FileOriginalName, "Document deleted", doc, nil)

	return c.NoContent(http.StatusNoContent)
}
