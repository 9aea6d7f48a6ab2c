package main

import (
	"log"

	"obra_flow_app_go/config"
	"obra_flow_app_go/db"
	"obra_flow_app_go/handlers"
	"obra_flow_app_go/middleware"
	"obra_flow_app_go/models"
	"obra_flow_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DatabaseURL, cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize file storage (S3-compatible, local fallback)
	services.InitializeStorage(cfg)

	// The transition engine shared by all handlers. The observer mirrors
	// every advancement into notifications, webhooks and email.
	handlers.Engine = services.NewTransitionEngine(db.DB)
	handlers.Engine.OnAttempt = advancementObserver(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))
	e.Use(middleware.AuditContext())

	api := e.Group("/api")
	{
		// Construction setup wizard and listings
		api.POST("/constructions", handlers.CreateConstructionHandler)
		api.GET("/constructions", handlers.GetConstructionsHandler)
		api.GET("/constructions/:id", handlers.GetConstructionHandler)
		api.PUT("/constructions/:id", handlers.UpdateConstructionHandler)
		api.DELETE("/constructions/:id", handlers.DeleteConstructionHandler)
		api.GET("/constructions/:id/progress", handlers.GetConstructionProgressHandler)
		api.POST("/constructions/:id/recheck", handlers.RecheckConstructionHandler)
		api.GET("/constructions/:id/report", handlers.DownloadConstructionReportHandler)

		// Notifications, scoped per construction
		api.GET("/constructions/:id/notifications", handlers.GetNotificationsHandler)
		api.PUT("/constructions/:id/notifications/:notificationId/read", handlers.MarkNotificationReadHandler)
		api.PUT("/constructions/:id/notifications/read-all", handlers.MarkAllNotificationsReadHandler)

		// Services and their progression
		api.GET("/services", handlers.GetServicesHandler)
		api.GET("/services/:id", handlers.GetServiceHandler)
		api.GET("/services/:id/completion", handlers.GetServiceCompletionHandler)
		api.POST("/services/:id/recheck", handlers.RecheckServiceHandler)
		api.PUT("/services/:id/comment", handlers.UpdateServiceCommentHandler)
		api.PUT("/services/:id/status", handlers.SetServiceStatusHandler)

		// Incidences
		api.POST("/services/:id/incidence", handlers.FlagIncidenceHandler)
		api.POST("/services/:id/incidence/respond", handlers.RespondIncidenceHandler)
		api.POST("/services/:id/restore-status", handlers.RestoreServiceStatusHandler)
		api.GET("/services/:id/incidence-documents", handlers.GetIncidenceDocumentsHandler)

		// Documents
		api.GET("/services/:id/documents", handlers.GetServiceDocumentsHandler)
		api.POST("/services/:id/documents", handlers.UploadServiceDocumentHandler)
		api.GET("/services/:id/documents/:documentId/download", handlers.DownloadServiceDocumentHandler)
		api.PUT("/services/:id/documents/:documentId/status", handlers.ReviewServiceDocumentHandler)
		api.DELETE("/services/:id/documents/:documentId", handlers.DeleteServiceDocumentHandler)

		// Reference data
		api.GET("/service-types", handlers.GetServiceTypesHandler)
		api.GET("/service-types/:id/catalog", handlers.GetStatusCatalogHandler)
		api.GET("/service-types/:id/required-documents", handlers.GetRequiredDocumentsHandler)
		api.GET("/service-statuses", handlers.GetServiceStatusesHandler)

		// Audit trail
		api.GET("/audit/:type/:id", handlers.GetResourceAuditHistoryHandler)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// advancementObserver fans every automatic advancement out to the in-app
// notification table, the CRM/chat webhooks and, when the new status needs
// something from the client, an email
func advancementObserver(cfg *config.Config) func(serviceID int, result *services.TransitionResult) {
	return func(serviceID int, result *services.TransitionResult) {
		if !result.Advanced {
			return
		}

		service, err := services.GetServiceByID(db.DB, serviceID)
		if err != nil {
			log.Printf("[ERROR] advancement observer: failed to load service %d: %v", serviceID, err)
			return
		}

		notifications := services.NewNotificationService(db.DB)
		if err := notifications.NotifyStatusChange(service, result.FromStatus, result.ToStatus); err != nil {
			log.Printf("[ERROR] failed to record notification for service %d: %v", serviceID, err)
		}

		services.EmitWebhooksAsync([]string{cfg.CRMWebhookURL, cfg.ChatWebhookURL}, services.WebhookEvent{
			Event:          "service.status_changed",
			ConstructionID: service.ConstructionID,
			ServiceID:      service.ID,
			ServiceType:    service.ServiceType.Name,
			FromStatus:     result.FromStatus,
			ToStatus:       result.ToStatus,
		})

		if service.Construction.ContactEmail == "" {
			return
		}
		needsAction, err := services.StatusRequiresUserAction(db.DB, service.ServiceTypeID, result.ToStatusID)
		if err != nil {
			log.Printf("[ERROR] failed to resolve user-action flag for status %d: %v", result.ToStatusID, err)
			return
		}
		if needsAction {
			email := services.BuildUserActionEmail(service.Construction.ContactEmail,
				service.ServiceType.Name, result.ToStatus)
			services.SendEmailAsync(cfg, email)
		}
	}
}
