package services

import (
	"errors"
	"fmt"
	"obra_flow_app_go/models"

	"gorm.io/gorm"
)

// Service-related errors
var (
	ErrServiceNotFound = errors.New("service not found")
)

// CompletionResult describes whether a service has satisfied all document
// requirements for automatic advancement
type CompletionResult struct {
	// False when the service is not in the collecting-documents status;
	// in that case nothing was checked and Complete is meaningless
	Evaluated bool `json:"evaluated"`
	Complete  bool `json:"complete"`

	RequiredCount int `json:"required_count"`
	ProvidedCount int `json:"provided_count"`

	// Documentation types still missing an approved document, reported for
	// diagnostics; an incomplete service is a normal result, not a failure
	MissingDocumentationTypeIDs []int `json:"missing_documentation_type_ids,omitempty"`
}

// CheckServiceDocuments decides whether every document required for the
// service's type has been provided. Read-only: on any read error the whole
// check aborts and the caller must not transition.
func CheckServiceDocuments(db *gorm.DB, ids StatusIDs, serviceID int) (*CompletionResult, error) {
	var service models.Service
	if err := db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to load service %d: %w", serviceID, err)
	}

	// Only meaningful while collecting documents; any other status is a
	// no-op, not an error
	if service.ServiceStatusID != ids.CollectingDocuments {
		return &CompletionResult{Evaluated: false, Complete: false}, nil
	}

	// Requirements supplied through the self-managed path are satisfied
	// elsewhere and never count against the automatic check
	var required []models.ServiceRequiredDocument
	if err := db.Where("service_type_id = ? AND only_self_managed = ?", service.ServiceTypeID, false).
		Find(&required).Error; err != nil {
		return nil, fmt.Errorf("failed to load required documents for type %d: %w", service.ServiceTypeID, err)
	}

	result := &CompletionResult{Evaluated: true, RequiredCount: len(required)}

	// Zero requirements: vacuously complete
	if len(required) == 0 {
		result.Complete = true
		return result, nil
	}

	var documents []models.ServiceDocument
	if err := db.Where("service_id = ?", serviceID).Find(&documents).Error; err != nil {
		return nil, fmt.Errorf("failed to load documents for service %d: %w", serviceID, err)
	}

	provided := make(map[int]bool)
	for _, doc := range documents {
		if doc.DocumentStatusID == ids.ApprovedDocument {
			provided[doc.DocumentationTypeID] = true
		}
	}

	for _, req := range required {
		if provided[req.DocumentationTypeID] {
			result.ProvidedCount++
		} else {
			result.MissingDocumentationTypeIDs = append(result.MissingDocumentationTypeIDs, req.DocumentationTypeID)
		}
	}

	result.Complete = len(result.MissingDocumentationTypeIDs) == 0
	return result, nil
}
