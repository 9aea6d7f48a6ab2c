package main

import (
	"log"

	"obra_flow_app_go/config"
	"obra_flow_app_go/db"
	"obra_flow_app_go/models"
	"obra_flow_app_go/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds the reference tables the progression engine depends on: document
// statuses, the status dictionary, service types and their ordered catalogs,
// and the per-type document requirements. Idempotent; safe to re-run.
func main() {
	cfg := config.Load()

	if err := db.Initialize(cfg.DatabaseURL, cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(
		&models.Distributor{},
		&models.ServiceType{},
		&models.ServiceStatus{},
		&models.ServiceTypeStatus{},
		&models.DocumentationType{},
		&models.DocumentStatus{},
		&models.ServiceRequiredDocument{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed(db.DB); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("Reference data seeded")
}

func seed(gdb *gorm.DB) error {
	ids := services.DefaultStatusIDs()

	documentStatuses := []models.DocumentStatus{
		{ID: models.DocumentStatusPending, Name: "Pendiente"},
		{ID: models.DocumentStatusRejected, Name: "Rechazado"},
		{ID: models.DocumentStatusProvided, Name: "Aportado"},
	}

	serviceStatuses := []models.ServiceStatus{
		{ID: ids.CollectingDocuments, Name: "Recopilación de documentación"},
		{ID: 2, Name: "Documentación en revisión"},
		{ID: ids.LegacyFallbackTarget, Name: "Solicitud enviada a distribuidora"},
		{ID: 9, Name: "Respuesta de distribuidora recibida"},
		{ID: 10, Name: "Presupuesto aceptado", RequiresUserAction: true},
		{ID: 11, Name: "Obras de extensión en curso"},
		{ID: 12, Name: "Contrato de suministro", RequiresUserAction: true},
		{ID: 13, Name: "Suministro activado", IsFinal: true},
		{ID: ids.IncidenceUnderReview, Name: "Incidencia en revisión", IsIncidence: true},
		{ID: 20, Name: "Incidencia: documentación incorrecta", IsIncidence: true},
		{ID: 21, Name: "Incidencia: dirección de suministro", IsIncidence: true},
	}

	serviceTypes := []models.ServiceType{
		{ID: 1, Name: "Luz obra", Servicio: "electricidad", Acometida: "provisional"},
		{ID: 2, Name: "Agua obra", Servicio: "agua", Acometida: "provisional"},
		{ID: 9, Name: "Luz definitiva", Servicio: "electricidad", Acometida: "definitiva"},
		{ID: 10, Name: "Agua definitiva", Servicio: "agua", Acometida: "definitiva"},
		{ID: 11, Name: "Gas", Servicio: "gas", Acometida: "definitiva"},
		{ID: 12, Name: "Telecomunicaciones", Servicio: "telecom", Acometida: "definitiva"},
	}

	documentationTypes := []models.DocumentationType{
		{ID: 101, Name: "Licencia de obra"},
		{ID: 102, Name: "CIE / Boletín eléctrico"},
		{ID: 103, Name: "Referencia catastral", IsText: true},
		{ID: 104, Name: "Escritura o nota simple"},
		{ID: 105, Name: "CUPS", IsText: true},
		{ID: 106, Name: "Cédula de habitabilidad"},
	}

	// Ordered progression for the definitive electricity supply; other types
	// share the common rows only until their own catalogs are loaded
	typeID := 9
	catalog := []models.ServiceTypeStatus{
		{ID: 1, ServiceTypeID: &typeID, ServiceStatusID: ids.CollectingDocuments, Orden: 10},
		{ID: 2, ServiceTypeID: &typeID, ServiceStatusID: ids.LegacyFallbackTarget, Orden: 20},
		{ID: 3, ServiceTypeID: &typeID, ServiceStatusID: 9, Orden: 30},
		{ID: 4, ServiceTypeID: &typeID, ServiceStatusID: 10, Orden: 40},
		{ID: 5, ServiceTypeID: &typeID, ServiceStatusID: 11, Orden: 50},
		{ID: 6, ServiceTypeID: &typeID, ServiceStatusID: 12, Orden: 60},
		{ID: 7, ServiceTypeID: &typeID, ServiceStatusID: 13, Orden: 70},
	}

	requiredDocuments := []models.ServiceRequiredDocument{
		{ID: 1, ServiceTypeID: typeID, DocumentationTypeID: 101},
		{ID: 2, ServiceTypeID: typeID, DocumentationTypeID: 102},
		{ID: 3, ServiceTypeID: typeID, DocumentationTypeID: 103},
		{ID: 4, ServiceTypeID: typeID, DocumentationTypeID: 105, OnlySelfManaged: true},
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		upsert := clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}

		if err := tx.Clauses(upsert).Create(&documentStatuses).Error; err != nil {
			return err
		}
		if err := tx.Clauses(upsert).Create(&serviceStatuses).Error; err != nil {
			return err
		}
		if err := tx.Clauses(upsert).Create(&serviceTypes).Error; err != nil {
			return err
		}
		if err := tx.Clauses(upsert).Create(&documentationTypes).Error; err != nil {
			return err
		}
		if err := tx.Clauses(upsert).Create(&catalog).Error; err != nil {
			return err
		}
		return tx.Clauses(upsert).Create(&requiredDocuments).Error
	})
}
