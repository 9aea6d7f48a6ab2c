package services

import (
	"obra_flow_app_go/models"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupWorkflowTestDB initializes an in-memory SQLite database with the
// tables the status workflow touches
func setupWorkflowTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
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
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	seedDocumentStatuses(t, db)
	return db
}

func seedDocumentStatuses(t *testing.T, db *gorm.DB) {
	t.Helper()
	statuses := []models.DocumentStatus{
		{ID: models.DocumentStatusPending, Name: "Pendiente"},
		{ID: models.DocumentStatusRejected, Name: "Rechazado"},
		{ID: models.DocumentStatusProvided, Name: "Aportado"},
	}
	if err := db.Create(&statuses).Error; err != nil {
		t.Fatalf("failed to seed document statuses: %v", err)
	}
}

// createServiceStatus inserts a ServiceStatus row with a fixed id
func createServiceStatus(t *testing.T, db *gorm.DB, id int, name string) models.ServiceStatus {
	t.Helper()
	status := models.ServiceStatus{ID: id, Name: name}
	if err := db.Create(&status).Error; err != nil {
		t.Fatalf("failed to create status %d: %v", id, err)
	}
	return status
}

// createWorkflowService creates a construction, a service type and one
// service at the given status, returning the service
func createWorkflowService(t *testing.T, db *gorm.DB, serviceTypeID, statusID int) models.Service {
	t.Helper()

	construction := models.Construction{
		Name:    "Edificio Pruebas",
		Address: "Calle Mayor 1",
		City:    "Madrid",
	}
	if err := db.Create(&construction).Error; err != nil {
		t.Fatalf("failed to create construction: %v", err)
	}

	var serviceType models.ServiceType
	if err := db.First(&serviceType, "id = ?", serviceTypeID).Error; err != nil {
		serviceType = models.ServiceType{ID: serviceTypeID, Name: "Tipo de prueba"}
		if err := db.Create(&serviceType).Error; err != nil {
			t.Fatalf("failed to create service type: %v", err)
		}
	}

	service := models.Service{
		ConstructionID:  construction.ID,
		ServiceTypeID:   serviceType.ID,
		ServiceStatusID: statusID,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service
}

// addCatalogRow binds a status to a service type at the given orden.
// A nil serviceTypeID creates a common row.
func addCatalogRow(t *testing.T, db *gorm.DB, serviceTypeID *int, statusID, orden int) models.ServiceTypeStatus {
	t.Helper()
	row := models.ServiceTypeStatus{
		ServiceTypeID:   serviceTypeID,
		ServiceStatusID: statusID,
		Orden:           orden,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("failed to create catalog row: %v", err)
	}
	return row
}

// requireDocument registers a documentation type as required for a type
func requireDocument(t *testing.T, db *gorm.DB, serviceTypeID, documentationTypeID int, onlySelfManaged bool) {
	t.Helper()
	var docType models.DocumentationType
	if err := db.First(&docType, "id = ?", documentationTypeID).Error; err != nil {
		docType = models.DocumentationType{ID: documentationTypeID, Name: "Documento de prueba"}
		if err := db.Create(&docType).Error; err != nil {
			t.Fatalf("failed to create documentation type: %v", err)
		}
	}
	req := models.ServiceRequiredDocument{
		ServiceTypeID:       serviceTypeID,
		DocumentationTypeID: documentationTypeID,
		OnlySelfManaged:     onlySelfManaged,
	}
	if err := db.Create(&req).Error; err != nil {
		t.Fatalf("failed to create required document: %v", err)
	}
}

// uploadDocument inserts a ServiceDocument at the given document status
func uploadDocument(t *testing.T, db *gorm.DB, serviceID, documentationTypeID, documentStatusID int) models.ServiceDocument {
	t.Helper()
	doc := models.ServiceDocument{
		ServiceID:           serviceID,
		DocumentationTypeID: documentationTypeID,
		DocumentStatusID:    documentStatusID,
	}
	if err := db.Create(&doc).Error; err != nil {
		t.Fatalf("failed to create service document: %v", err)
	}
	return doc
}

func intPtr(i int) *int {
	return &i
}
