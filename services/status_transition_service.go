package services

import (
	"errors"
	"fmt"
	"log"
	"obra_flow_app_go/models"

	"gorm.io/gorm"
)

// Transition-related errors
var (
	// ErrStatusNotInCatalog signals a data-integrity problem: the catalog
	// for the service's type is non-empty but does not contain the
	// service's current status. Requires operator attention.
	ErrStatusNotInCatalog = errors.New("current status absent from status catalog")
)

// TransitionReason explains the outcome of an advancement attempt. All of
// these are normal results; true failures are returned as errors.
type TransitionReason string

const (
	ReasonAdvanced         TransitionReason = "advanced"
	ReasonLegacyFallback   TransitionReason = "advanced_legacy_fallback"
	ReasonNotCollecting    TransitionReason = "not_in_collecting_state"
	ReasonDocumentsPending TransitionReason = "documents_pending"
	ReasonAtFinalPosition  TransitionReason = "already_final_position"
)

// TransitionResult describes what an advancement attempt did
type TransitionResult struct {
	Advanced     bool             `json:"advanced"`
	Reason       TransitionReason `json:"reason"`
	FromStatusID int              `json:"from_status_id"`
	ToStatusID   int              `json:"to_status_id,omitempty"`
	FromStatus   string           `json:"from_status,omitempty"`
	ToStatus     string           `json:"to_status,omitempty"`
	UsedFallback bool             `json:"used_fallback,omitempty"`

	// Populated when documents are still pending, for observability
	MissingDocumentationTypeIDs []int `json:"missing_documentation_type_ids,omitempty"`
}

// TransitionEngine advances a service's status by exactly one catalog step
// once its documents are complete.
//
// The read-documents/decide/write-status sequence is not wrapped in a
// transaction: two concurrent approvals can both observe "complete" and both
// issue the advance. Both compute the same target from the same starting
// status, so the operation is at-least-once and convergent, but not provably
// exactly-once.
type TransitionEngine struct {
	DB  *gorm.DB
	IDs StatusIDs

	// OnAttempt, when set, receives every decision outcome (including
	// no-ops) so callers can log or emit events from one place
	OnAttempt func(serviceID int, result *TransitionResult)
}

// NewTransitionEngine creates an engine with the production status ids
func NewTransitionEngine(db *gorm.DB) *TransitionEngine {
	return &TransitionEngine{DB: db, IDs: DefaultStatusIDs()}
}

// TryAdvance advances the service to the next status in catalog order, or
// reports why it did not. Safe to call repeatedly: an already-advanced or
// final service is a no-op.
func (e *TransitionEngine) TryAdvance(serviceID int) (*TransitionResult, error) {
	var service models.Service
	if err := e.DB.Preload("ServiceStatus").First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to load service %d: %w", serviceID, err)
	}

	result := &TransitionResult{
		FromStatusID: service.ServiceStatusID,
		FromStatus:   service.ServiceStatus.Name,
	}

	if service.ServiceStatusID != e.IDs.CollectingDocuments {
		result.Reason = ReasonNotCollecting
		return e.finish(serviceID, result)
	}

	completion, err := CheckServiceDocuments(e.DB, e.IDs, serviceID)
	if err != nil {
		return nil, err
	}
	if !completion.Complete {
		result.Reason = ReasonDocumentsPending
		result.MissingDocumentationTypeIDs = completion.MissingDocumentationTypeIDs
		return e.finish(serviceID, result)
	}

	catalog, err := GetOrderedStatuses(e.DB, service.ServiceTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load status catalog for type %d: %w", service.ServiceTypeID, err)
	}

	// Services created before the catalog table existed have no rows for
	// their type; keep them moving by jumping straight to the fixed legacy
	// target. Deliberate special case, not a general rule.
	if len(catalog) == 0 {
		log.Printf("[WARNING] service %d (type %d) has no status catalog, applying legacy fallback to status %d",
			serviceID, service.ServiceTypeID, e.IDs.LegacyFallbackTarget)
		return e.advanceTo(serviceID, result, e.IDs.LegacyFallbackTarget, true)
	}

	index := IndexOfStatus(catalog, service.ServiceStatusID)
	if index < 0 {
		log.Printf("[ERROR] service %d: status %d not present in catalog for type %d (catalog: %v)",
			serviceID, service.ServiceStatusID, service.ServiceTypeID, catalogStatusIDs(catalog))
		return nil, fmt.Errorf("service %d, type %d, status %d: %w",
			serviceID, service.ServiceTypeID, service.ServiceStatusID, ErrStatusNotInCatalog)
	}

	if index == len(catalog)-1 {
		result.Reason = ReasonAtFinalPosition
		return e.finish(serviceID, result)
	}

	return e.advanceTo(serviceID, result, catalog[index+1].ServiceStatusID, false)
}

// advanceTo persists the new status. Single-row update with no version
// check: last writer wins.
func (e *TransitionEngine) advanceTo(serviceID int, result *TransitionResult, targetStatusID int, fallback bool) (*TransitionResult, error) {
	if err := e.DB.Model(&models.Service{}).
		Where("id = ?", serviceID).
		Update("service_status_id", targetStatusID).Error; err != nil {
		return nil, fmt.Errorf("failed to update status of service %d: %w", serviceID, err)
	}

	result.Advanced = true
	result.ToStatusID = targetStatusID
	result.UsedFallback = fallback
	if fallback {
		result.Reason = ReasonLegacyFallback
	} else {
		result.Reason = ReasonAdvanced
	}

	var target models.ServiceStatus
	if err := e.DB.First(&target, "id = ?", targetStatusID).Error; err == nil {
		result.ToStatus = target.Name
	}

	return e.finish(serviceID, result)
}

func (e *TransitionEngine) finish(serviceID int, result *TransitionResult) (*TransitionResult, error) {
	if e.OnAttempt != nil {
		e.OnAttempt(serviceID, result)
	}
	return result, nil
}

func catalogStatusIDs(catalog []models.ServiceTypeStatus) []int {
	statusIDs := make([]int, len(catalog))
	for i, row := range catalog {
		statusIDs[i] = row.ServiceStatusID
	}
	return statusIDs
}
