package services

import (
	"errors"
	"fmt"
	"obra_flow_app_go/models"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// Status-write errors
var (
	ErrStatusNotFound = errors.New("service status not found")
)

// Comments and text documents come from browser forms; strip all markup
var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips any markup from client-supplied text
func SanitizeText(s string) string {
	return textPolicy.Sanitize(s)
}

// GetServiceByID retrieves a service with its relationships preloaded
func GetServiceByID(db *gorm.DB, serviceID int) (*models.Service, error) {
	var service models.Service
	err := db.Preload("Construction").
		Preload("ServiceType").
		Preload("ServiceStatus").
		Preload("PreviousStatus").
		Preload("Distributor").
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Documents.DocumentationType").
		Preload("Documents.DocumentStatus").
		First(&service, "id = ?", serviceID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	return &service, nil
}

// GetServicesByConstruction retrieves all services of a construction
func GetServicesByConstruction(db *gorm.DB, constructionID int) ([]models.Service, error) {
	var services []models.Service
	err := db.Where("construction_id = ?", constructionID).
		Preload("ServiceType").
		Preload("ServiceStatus").
		Preload("Distributor").
		Order("id ASC").
		Find(&services).Error
	return services, err
}

// ServiceFilters holds filter options for querying services
type ServiceFilters struct {
	ConstructionID  int
	ServiceTypeID   int
	ServiceStatusID int
	DateFrom        *time.Time
	DateTo          *time.Time
}

// GetServices retrieves services with filters and pagination
func GetServices(db *gorm.DB, filters ServiceFilters, page, limit int) ([]models.Service, int64, error) {
	var services []models.Service
	var total int64

	query := db.Model(&models.Service{})
	if filters.ConstructionID != 0 {
		query = query.Where("construction_id = ?", filters.ConstructionID)
	}
	if filters.ServiceTypeID != 0 {
		query = query.Where("service_type_id = ?", filters.ServiceTypeID)
	}
	if filters.ServiceStatusID != 0 {
		query = query.Where("service_status_id = ?", filters.ServiceStatusID)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Preload("Construction").
		Preload("ServiceType").
		Preload("ServiceStatus").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&services).Error

	return services, total, err
}

// UpdateServiceComment sets the free-text comment on a service
func UpdateServiceComment(db *gorm.DB, serviceID int, comment string) error {
	clean := SanitizeText(comment)
	result := db.Model(&models.Service{}).
		Where("id = ?", serviceID).
		Update("comment", clean)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// SetServiceStatus writes a status on a service directly (staff action, not
// the automatic advancement). Moving into an incidence status records the
// current status so the service can resume once the incidence is resolved;
// leaving one clears the bookmark.
func SetServiceStatus(db *gorm.DB, serviceID, newStatusID int) error {
	var status models.ServiceStatus
	if err := db.First(&status, "id = ?", newStatusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStatusNotFound
		}
		return err
	}

	var service models.Service
	if err := db.First(&service, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}

	updates := map[string]interface{}{
		"service_status_id": newStatusID,
	}
	if status.IsIncidence && !service.HasPreviousStatus() {
		updates["previous_status_id"] = service.ServiceStatusID
	}
	if !status.IsIncidence && service.HasPreviousStatus() {
		updates["previous_status_id"] = nil
	}

	if err := db.Model(&models.Service{}).Where("id = ?", serviceID).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update status of service %d: %w", serviceID, err)
	}
	return nil
}

// ServiceProgress summarizes document completion for a service, used by
// listing views
type ServiceProgress struct {
	ServiceID     int    `json:"service_id"`
	StatusName    string `json:"status_name"`
	RequiredCount int    `json:"required_count"`
	ProvidedCount int    `json:"provided_count"`
	Complete      bool   `json:"complete"`
}

// GetConstructionProgress recomputes per-service document completion for
// every service of a construction
func GetConstructionProgress(db *gorm.DB, ids StatusIDs, constructionID int) ([]ServiceProgress, error) {
	services, err := GetServicesByConstruction(db, constructionID)
	if err != nil {
		return nil, err
	}

	progress := make([]ServiceProgress, 0, len(services))
	for _, service := range services {
		completion, err := CheckServiceDocuments(db, ids, service.ID)
		if err != nil {
			return nil, err
		}
		progress = append(progress, ServiceProgress{
			ServiceID:     service.ID,
			StatusName:    service.ServiceStatus.Name,
			RequiredCount: completion.RequiredCount,
			ProvidedCount: completion.ProvidedCount,
			Complete:      completion.Evaluated && completion.Complete,
		})
	}
	return progress, nil
}
