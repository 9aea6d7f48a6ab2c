package services

import (
	"testing"

	"obra_flow_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hola", SanitizeText("<b>hola</b>"))
	assert.Equal(t, "hola", SanitizeText("hola<script>alert(1)</script>"))
	assert.Equal(t, "texto normal", SanitizeText("texto normal"))
}

func TestUpdateServiceComment(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ids := DefaultStatusIDs()

	createServiceStatus(t, db, ids.CollectingDocuments, "Recopilación de documentación")
	service := createWorkflowService(t, db, 9, ids.CollectingDocuments)

	assert.NoError(t, UpdateServiceComment(db, service.ID, "Pendiente de <i>boletín</i>"))

	var updated models.Service
	assert.NoError(t, db.First(&updated, "id = ?", service.ID).Error)
	assert.Equal(t, "Pendiente de boletín", *updated.Comment)

	assert.ErrorIs(t, UpdateServiceComment(db, 999, "x"), ErrServiceNotFound)
}

func TestSetServiceStatusBookmarksIncidences(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ids := DefaultStatusIDs()

	createServiceStatus(t, db, ids.CollectingDocuments, "Recopilación de documentación")
	createServiceStatus(t, db, 8, "Solicitud enviada")
	incidence := models.ServiceStatus{ID: 20, Name: "Incidencia", IsIncidence: true}
	assert.NoError(t, db.Create(&incidence).Error)

	service := createWorkflowService(t, db, 9, ids.CollectingDocuments)

	// Into an incidence: bookmark the current status
	assert.NoError(t, SetServiceStatus(db, service.ID, incidence.ID))
	var updated models.Service
	assert.NoError(t, db.First(&updated, "id = ?", service.ID).Error)
	assert.Equal(t, incidence.ID, updated.ServiceStatusID)
	assert.Equal(t, ids.CollectingDocuments, *updated.PreviousStatusID)

	// Out of the incidence: clear it
	assert.NoError(t, SetServiceStatus(db, service.ID, 8))
	assert.NoError(t, db.First(&updated, "id = ?", service.ID).Error)
	assert.Equal(t, 8, updated.ServiceStatusID)
	assert.Nil(t, updated.PreviousStatusID)

	assert.ErrorIs(t, SetServiceStatus(db, service.ID, 999), ErrStatusNotFound)
	assert.ErrorIs(t, SetServiceStatus(db, 999, 8), ErrServiceNotFound)
}

func TestGetServicesFilters(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ids := DefaultStatusIDs()

	createServiceStatus(t, db, ids.CollectingDocuments, "Recopilación de documentación")
	createServiceStatus(t, db, 8, "Solicitud enviada")

	serviceA := createWorkflowService(t, db, 9, ids.CollectingDocuments)
	createWorkflowService(t, db, 4, 8)

	results, total, err := GetServices(db, ServiceFilters{ServiceTypeID: 9}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, serviceA.ID, results[0].ID)

	results, total, err = GetServices(db, ServiceFilters{ServiceStatusID: 8}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 8, results[0].ServiceStatusID)

	_, total, err = GetServices(db, ServiceFilters{}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestGetConstructionProgress(t *testing.T) {
	db := setupWorkflowTestDB(t)
	ids := DefaultStatusIDs()

	createServiceStatus(t, db, ids.CollectingDocuments, "Recopilación de documentación")
	service := createWorkflowService(t, db, 9, ids.CollectingDocuments)
	requireDocument(t, db, 9, 101, false)
	uploadDocument(t, db, service.ID, 101, models.DocumentStatusProvided)

	progress, err := GetConstructionProgress(db, ids, service.ConstructionID)
	assert.NoError(t, err)
	assert.Len(t, progress, 1)
	assert.Equal(t, service.ID, progress[0].ServiceID)
	assert.Equal(t, 1, progress[0].RequiredCount)
	assert.Equal(t, 1, progress[0].ProvidedCount)
	assert.True(t, progress[0].Complete)
}
