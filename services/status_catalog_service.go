package services

import (
	"obra_flow_app_go/models"

	"gorm.io/gorm"
)

// GetOrderedStatuses retrieves the progression sequence for a service type:
// catalog rows bound to the type plus the common rows (NULL type), sorted by
// orden. Ties on orden are broken by row id so the sequence is deterministic
// regardless of the backing engine.
func GetOrderedStatuses(db *gorm.DB, serviceTypeID int) ([]models.ServiceTypeStatus, error) {
	var rows []models.ServiceTypeStatus
	err := db.Where("service_type_id = ? OR service_type_id IS NULL", serviceTypeID).
		Preload("ServiceStatus").
		Order("orden ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// IndexOfStatus returns the zero-based position of a status in the ordered
// catalog, or -1 when the status is absent
func IndexOfStatus(catalog []models.ServiceTypeStatus, statusID int) int {
	for i, row := range catalog {
		if row.ServiceStatusID == statusID {
			return i
		}
	}
	return -1
}

// StatusRequiresUserAction resolves the requires_user_action flag for a
// status as seen by one service type: the catalog row override wins, then the
// status dictionary flag. Absent rows resolve to the dictionary flag alone.
func StatusRequiresUserAction(db *gorm.DB, serviceTypeID, statusID int) (bool, error) {
	var row models.ServiceTypeStatus
	err := db.Where("(service_type_id = ? OR service_type_id IS NULL) AND service_status_id = ?", serviceTypeID, statusID).
		Preload("ServiceStatus").
		Order("service_type_id IS NULL, id").
		First(&row).Error
	if err == nil {
		return row.EffectiveRequiresUserAction(), nil
	}

	var status models.ServiceStatus
	if err := db.First(&status, "id = ?", statusID).Error; err != nil {
		return false, err
	}
	return status.RequiresUserAction, nil
}
