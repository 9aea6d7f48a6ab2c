package services

import (
	"errors"
	"fmt"
	"obra_flow_app_go/models"

	"gorm.io/gorm"
)

// Incidence-related errors
var (
	ErrStatusNotIncidence  = errors.New("status is not an incidence status")
	ErrServiceNotIncidence = errors.New("service is not in an incidence status")
	ErrNoPreviousStatus    = errors.New("service has no previous status recorded")
)

// FlagIncidence moves a service into an incidence status, recording the
// current status so the service can resume later. The automatic advancement
// never runs while the service stays here.
func FlagIncidence(db *gorm.DB, serviceID, incidenceStatusID int) error {
	var status models.ServiceStatus
	if err := db.First(&status, "id = ?", incidenceStatusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStatusNotFound
		}
		return err
	}
	if !status.IsIncidence {
		return ErrStatusNotIncidence
	}

	var service models.Service
	if err := db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}

	updates := map[string]interface{}{
		"service_status_id": incidenceStatusID,
	}
	// Keep the original bookmark if staff reclassify one incidence as
	// another before it is resolved
	if !service.HasPreviousStatus() {
		updates["previous_status_id"] = service.ServiceStatusID
	}

	return db.Model(&models.Service{}).Where("id = ?", serviceID).Updates(updates).Error
}

// IncidenceResponse holds a client's reply to an incidence: an already-stored
// file, free text, or both
type IncidenceResponse struct {
	DocumentationTypeID *int
	FileOriginalName    string
	FilePath            string
	FileSize            int64
	MimeType            string
	Link                *string
	ContentText         *string
}

// ResolveIncidence records the client's response and moves the service to the
// under-review status. Staff decide the next step from there; the automatic
// engine stays out of it.
func ResolveIncidence(db *gorm.DB, ids StatusIDs, serviceID int, response IncidenceResponse) (*models.IncidenceDocument, error) {
	service, err := GetServiceByID(db, serviceID)
	if err != nil {
		return nil, err
	}
	if !service.ServiceStatus.IsIncidence {
		return nil, ErrServiceNotIncidence
	}

	if response.ContentText != nil {
		clean := SanitizeText(*response.ContentText)
		response.ContentText = &clean
	}

	doc := &models.IncidenceDocument{
		ServiceID:           serviceID,
		DocumentationTypeID: response.DocumentationTypeID,
		Link:                response.Link,
		ContentText:         response.ContentText,
		FileOriginalName:    response.FileOriginalName,
		FilePath:            response.FilePath,
		FileSize:            response.FileSize,
		MimeType:            response.MimeType,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return fmt.Errorf("failed to record incidence response: %w", err)
		}
		return tx.Model(&models.Service{}).
			Where("id = ?", serviceID).
			Update("service_status_id", ids.IncidenceUnderReview).Error
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// RestorePreviousStatus returns a service to the status it occupied before
// the incidence and clears the bookmark (back-office action after review)
func RestorePreviousStatus(db *gorm.DB, serviceID int) error {
	var service models.Service
	if err := db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	if !service.HasPreviousStatus() {
		return ErrNoPreviousStatus
	}

	return db.Model(&models.Service{}).
		Where("id = ?", serviceID).
		Updates(map[string]interface{}{
			"service_status_id":  *service.PreviousStatusID,
			"previous_status_id": nil,
		}).Error
}

// GetIncidenceDocuments lists a service's incidence responses, newest first
func GetIncidenceDocuments(db *gorm.DB, serviceID int) ([]models.IncidenceDocument, error) {
	var docs []models.IncidenceDocument
	err := db.Where("service_id = ?", serviceID).
		Preload("DocumentationType").
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}
