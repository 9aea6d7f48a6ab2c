package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize sets up the database connection. When databaseURL is non-empty
// it connects to Postgres, otherwise it opens a local SQLite file with WAL
// mode enabled for concurrency.
func Initialize(databaseURL, dbPath, environment string) error {
	var err error

	// Determine log level based on environment
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	if databaseURL != "" {
		DB, err = gorm.Open(postgres.Open(databaseURL), gormCfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Database connection established (Postgres)")
		return nil
	}

	// Enable WAL mode for better concurrency support
	dsn := dbPath + "?_journal_mode=WAL"
	DB, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (SQLite, WAL mode enabled)")
	return nil
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
