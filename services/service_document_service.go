package services

import (
	"errors"
	"obra_flow_app_go/models"

	"gorm.io/gorm"
)

// Document-related errors
var (
	ErrDocumentNotFound          = errors.New("document not found")
	ErrDocumentationTypeNotFound = errors.New("documentation type not found")
	ErrEmptyDocument             = errors.New("document needs a file or text content")
)

// DocumentUpload holds the data for a new or re-uploaded document. The file
// itself is already in storage; this records the row.
type DocumentUpload struct {
	DocumentationTypeID int
	Link                *string
	ContentText         *string
	FileName            string
	FileOriginalName    string
	FilePath            string
	FileSize            int64
	MimeType            string
}

// UpsertServiceDocument records an uploaded document for a service. A
// re-upload for the same documentation type replaces the existing row's
// content and resets it to pending review.
func UpsertServiceDocument(db *gorm.DB, serviceID int, upload DocumentUpload) (*models.ServiceDocument, error) {
	if upload.FilePath == "" && (upload.ContentText == nil || *upload.ContentText == "") {
		return nil, ErrEmptyDocument
	}

	var docType models.DocumentationType
	if err := db.First(&docType, "id = ?", upload.DocumentationTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentationTypeNotFound
		}
		return nil, err
	}

	if upload.ContentText != nil {
		clean := SanitizeText(*upload.ContentText)
		upload.ContentText = &clean
	}

	var doc models.ServiceDocument
	err := db.Where("service_id = ? AND documentation_type_id = ?", serviceID, upload.DocumentationTypeID).
		First(&doc).Error
	switch {
	case err == nil:
		doc.Link = upload.Link
		doc.ContentText = upload.ContentText
		doc.FileName = upload.FileName
		doc.FileOriginalName = upload.FileOriginalName
		doc.FilePath = upload.FilePath
		doc.FileSize = upload.FileSize
		doc.MimeType = upload.MimeType
		doc.DocumentStatusID = models.DocumentStatusPending
		if err := db.Save(&doc).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		doc = models.ServiceDocument{
			ServiceID:           serviceID,
			DocumentationTypeID: upload.DocumentationTypeID,
			DocumentStatusID:    models.DocumentStatusPending,
			Link:                upload.Link,
			ContentText:         upload.ContentText,
			FileName:            upload.FileName,
			FileOriginalName:    upload.FileOriginalName,
			FilePath:            upload.FilePath,
			FileSize:            upload.FileSize,
			MimeType:            upload.MimeType,
		}
		if err := db.Create(&doc).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return &doc, nil
}

// GetServiceDocument retrieves a single document of a service
func GetServiceDocument(db *gorm.DB, serviceID, documentID int) (*models.ServiceDocument, error) {
	var doc models.ServiceDocument
	err := db.Preload("DocumentationType").
		Preload("DocumentStatus").
		Where("service_id = ?", serviceID).
		First(&doc, "id = ?", documentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// GetServiceDocuments lists a service's documents, newest first
func GetServiceDocuments(db *gorm.DB, serviceID int) ([]models.ServiceDocument, error) {
	var docs []models.ServiceDocument
	err := db.Where("service_id = ?", serviceID).
		Preload("DocumentationType").
		Preload("DocumentStatus").
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

// SetDocumentStatus writes the review status of a document
func SetDocumentStatus(db *gorm.DB, serviceID, documentID, statusID int) (*models.ServiceDocument, error) {
	doc, err := GetServiceDocument(db, serviceID, documentID)
	if err != nil {
		return nil, err
	}

	if err := db.Model(&models.ServiceDocument{}).
		Where("id = ?", documentID).
		Update("document_status_id", statusID).Error; err != nil {
		return nil, err
	}

	doc.DocumentStatusID = statusID
	return doc, nil
}

// DeleteServiceDocument removes a document row and returns it so the caller
// can clean up storage
func DeleteServiceDocument(db *gorm.DB, serviceID, documentID int) (*models.ServiceDocument, error) {
	doc, err := GetServiceDocument(db, serviceID, documentID)
	if err != nil {
		return nil, err
	}
	if err := db.Delete(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}
