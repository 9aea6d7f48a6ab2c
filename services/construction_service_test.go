package services

import (
	"testing"

	"obra_flow_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateConstructionWithServices(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ids := DefaultStatusIDs()

	createServiceStatus(t, db, ids.CollectingDocuments, "Recopilación de documentación")
	assert.NoError(t, db.Create(&models.ServiceType{ID: 1, Name: "Luz"}).Error)
	assert.NoError(t, db.Create(&models.ServiceType{ID: 2, Name: "Agua"}).Error)

	construction, err := CreateConstructionWithServices(db, ids, ConstructionInput{
		Name:           "Residencial Norte",
		Address:        "Av. de la Constitución 12",
		City:           "Sevilla",
		Province:       "Sevilla",
		PostalCode:     "41001",
		CompanyName:    "Promotora Norte SL",
		ServiceTypeIDs: []int{1, 2},
	})
	assert.NoError(t, err)
	assert.NotZero(t, construction.ID)
	assert.Len(t, construction.Services, 2)
	for _, service := range construction.Services {
		assert.Equal(t, ids.CollectingDocuments, service.ServiceStatusID)
	}
}

func TestCreateConstructionRequiresServiceTypes(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ids := DefaultStatusIDs()

	_, err := CreateConstructionWithServices(db, ids, ConstructionInput{Name: "Sin servicios"})
	assert.ErrorIs(t, err, ErrNoServiceTypes)
}

func TestCreateConstructionRejectsUnknownServiceType(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ids := DefaultStatusIDs()

	createServiceStatus(t, db, ids.CollectingDocuments, "Recopilación de documentación")
	assert.NoError(t, db.Create(&models.ServiceType{ID: 1, Name: "Luz"}).Error)

	_, err := CreateConstructionWithServices(db, ids, ConstructionInput{
		Name:           "Residencial Norte",
		ServiceTypeIDs: []int{1, 99},
	})
	assert.Error(t, err)

	// Nothing was created, the transaction rolled back
	var count int64
	db.Model(&models.Construction{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetConstructionsKeywordFilter(t *testing.T) {
	db := setupWorkflowTestDB(t)

	assert.NoError(t, db.Create(&models.Construction{Name: "Residencial Norte", Address: "Calle A", CompanyName: "Norte SL"}).Error)
	assert.NoError(t, db.Create(&models.Construction{Name: "Torre Sur", Address: "Calle B", CompanyName: "Sur SL"}).Error)

	results, total, err := GetConstructions(db, ConstructionFilters{Keyword: "Norte"}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, results, 1)
	assert.Equal(t, "Residencial Norte", results[0].Name)

	results, total, err = GetConstructions(db, ConstructionFilters{}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, results, 2)
}

func TestUpdateConstruction(t *testing.T) {
	db := setupWorkflowTestDB(t)

	construction := models.Construction{Name: "Viejo nombre", Address: "Calle A"}
	assert.NoError(t, db.Create(&construction).Error)

	err := UpdateConstruction(db, construction.ID, ConstructionInput{
		Name:    "Nuevo nombre",
		Address: "Calle B",
		City:    "Valencia",
	})
	assert.NoError(t, err)

	var updated models.Construction
	assert.NoError(t, db.First(&updated, "id = ?", construction.ID).Error)
	assert.Equal(t, "Nuevo nombre", updated.Name)
	assert.Equal(t, "Valencia", updated.City)

	assert.ErrorIs(t, UpdateConstruction(db, 999, ConstructionInput{Name: "X"}), ErrConstructionNotFound)
}

func TestDeleteConstructionSoftDeletesServices(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ids := DefaultStatusIDs()

	createServiceStatus(t, db, ids.CollectingDocuments, "Recopilación de documentación")
	assert.NoError(t, db.Create(&models.ServiceType{ID: 1, Name: "Luz"}).Error)

	construction, err := CreateConstructionWithServices(db, ids, ConstructionInput{
		Name:           "Para borrar",
		ServiceTypeIDs: []int{1},
	})
	assert.NoError(t, err)

	assert.NoError(t, DeleteConstruction(db, construction.ID))

	_, err = GetConstructionByID(db, construction.ID)
	assert.ErrorIs(t, err, ErrConstructionNotFound)

	var visible int64
	db.Model(&models.Service{}).Where("construction_id = ?", construction.ID).Count(&visible)
	assert.Zero(t, visible)

	// Soft delete keeps the rows
	var all int64
	db.Unscoped().Model(&models.Service{}).Where("construction_id = ?", construction.ID).Count(&all)
	assert.Equal(t, int64(1), all)

	assert.ErrorIs(t, DeleteConstruction(db, 999), ErrConstructionNotFound)
}
