package services

import (
	"errors"
	"fmt"
	"obra_flow_app_go/models"

	"gorm.io/gorm"
)

// Construction-related errors
var (
	ErrConstructionNotFound = errors.New("construction not found")
	ErrNoServiceTypes       = errors.New("at least one service type is required")
)

// ConstructionInput holds the data for the construction setup wizard
type ConstructionInput struct {
	Name        string
	Address     string
	City        string
	Province    string
	PostalCode   string
	CompanyName  string
	ContactEmail string

	// Service types to provision for this construction; one Service is
	// created per type, starting at the collecting-documents status
	ServiceTypeIDs []int
}

// CreateConstructionWithServices creates a construction and its services in
// one transaction (the setup wizard)
func CreateConstructionWithServices(db *gorm.DB, ids StatusIDs, input ConstructionInput) (*models.Construction, error) {
	if len(input.ServiceTypeIDs) == 0 {
		return nil, ErrNoServiceTypes
	}

	construction := &models.Construction{
		Name:        input.Name,
		Address:     input.Address,
		City:        input.City,
		Province:    input.Province,
		PostalCode:   input.PostalCode,
		CompanyName:  input.CompanyName,
		ContactEmail: input.ContactEmail,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Validate the requested types exist before creating anything
		var count int64
		if err := tx.Model(&models.ServiceType{}).
			Where("id IN ?", input.ServiceTypeIDs).
			Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(input.ServiceTypeIDs) {
			return fmt.Errorf("unknown service type in %v", input.ServiceTypeIDs)
		}

		if err := tx.Create(construction).Error; err != nil {
			return fmt.Errorf("failed to create construction: %w", err)
		}

		for _, typeID := range input.ServiceTypeIDs {
			service := models.Service{
				ConstructionID:  construction.ID,
				ServiceTypeID:   typeID,
				ServiceStatusID: ids.CollectingDocuments,
			}
			if err := tx.Create(&service).Error; err != nil {
				return fmt.Errorf("failed to create service for type %d: %w", typeID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetConstructionByID(db, construction.ID)
}

// GetConstructionByID retrieves a construction with its services preloaded
func GetConstructionByID(db *gorm.DB, constructionID int) (*models.Construction, error) {
	var construction models.Construction
	err := db.Preload("Services", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).
		Preload("Services.ServiceType").
		Preload("Services.ServiceStatus").
		First(&construction, "id = ?", constructionID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConstructionNotFound
		}
		return nil, err
	}

	return &construction, nil
}

// ConstructionFilters holds filter options for querying constructions
type ConstructionFilters struct {
	Keyword string
}

// GetConstructions retrieves constructions with filters and pagination
func GetConstructions(db *gorm.DB, filters ConstructionFilters, page, limit int) ([]models.Construction, int64, error) {
	var constructions []models.Construction
	var total int64

	query := db.Model(&models.Construction{})
	if filters.Keyword != "" {
		kw := "%" + filters.Keyword + "%"
		query = query.Where(
			db.Where("name LIKE ?", kw).
				Or("address LIKE ?", kw).
				Or("company_name LIKE ?", kw),
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Preload("Services").
		Preload("Services.ServiceStatus").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&constructions).Error

	return constructions, total, err
}

// UpdateConstruction updates the mutable fields of a construction
func UpdateConstruction(db *gorm.DB, constructionID int, input ConstructionInput) error {
	result := db.Model(&models.Construction{}).
		Where("id = ?", constructionID).
		Updates(map[string]interface{}{
			"name":         input.Name,
			"address":      input.Address,
			"city":         input.City,
			"province":     input.Province,
			"postal_code":   input.PostalCode,
			"company_name":  input.CompanyName,
			"contact_email": input.ContactEmail,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConstructionNotFound
	}
	return nil
}

// DeleteConstruction soft-deletes a construction and its services
func DeleteConstruction(db *gorm.DB, constructionID int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var construction models.Construction
		if err := tx.First(&construction, "id = ?", constructionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrConstructionNotFound
			}
			return err
		}

		if err := tx.Where("construction_id = ?", constructionID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		return tx.Delete(&construction).Error
	})
}
