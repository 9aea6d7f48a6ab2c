package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"obra_flow_app_go/db"
	"obra_flow_app_go/models"
	"obra_flow_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.Exec("PRAGMA journal_mode=WAL;").Error
	assert.NoError(t, err)

	// Initialize Storage for tests if not already set
	if services.Storage == nil {
		services.Storage = services.NewLocalStorage(t.TempDir())
	}

	err = testDB.AutoMigrate(
		&models.Construction{},
		&models.Distributor{},
		&models.ServiceType{},
		&models.ServiceStatus{},
		&models.ServiceTypeStatus{},
		&models.Service{},
		&models.DocumentationType{},
		&models.DocumentStatus{},
		&models.ServiceRequiredDocument{},
		&models.ServiceDocument{},
		&models.IncidenceDocument{},
		&models.Notification{},
		&models.AuditLog{},
	)
	assert.NoError(t, err)

	// Set global DB and engine
	db.DB = testDB
	Engine = services.NewTransitionEngine(testDB)

	seedWorkflowReferenceData(t, testDB)

	return testDB
}

// seedWorkflowReferenceData inserts the statuses every scenario relies on
func seedWorkflowReferenceData(t *testing.T, testDB *gorm.DB) {
	t.Helper()

	docStatuses := []models.DocumentStatus{
		{ID: models.DocumentStatusPending, Name: "Pendiente"},
		{ID: models.DocumentStatusRejected, Name: "Rechazado"},
		{ID: models.DocumentStatusProvided, Name: "Aportado"},
	}
	assert.NoError(t, testDB.Create(&docStatuses).Error)

	ids := services.DefaultStatusIDs()
	statuses := []models.ServiceStatus{
		{ID: ids.CollectingDocuments, Name: "Recopilación de documentación"},
		{ID: ids.LegacyFallbackTarget, Name: "Solicitud enviada"},
		{ID: ids.IncidenceUnderReview, Name: "Incidencia en revisión"},
	}
	assert.NoError(t, testDB.Create(&statuses).Error)
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return e, c, rec
}
