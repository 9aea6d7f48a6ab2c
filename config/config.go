package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	UploadDir   string
	// Database: when DatabaseURL is set the Postgres driver is used,
	// otherwise a local SQLite file at DBPath
	DatabaseURL string
	DBPath      string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Fire-and-forget integration webhooks
	CRMWebhookURL  string
	ChatWebhookURL string
	// Other
	AllowedOrigins []string
	AppURL         string
	// S3-compatible object storage (Supabase storage / any S3 endpoint)
	StorageEndpoint  string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StoragePublicURL string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "development"),
		UploadDir:        getEnv("UPLOAD_DIR", "static/uploads"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DBPath:           getEnv("DB_PATH", "db/app.db"),
		ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
		EmailFrom:        getEnv("EMAIL_FROM", "noreply@tramitaobra.es"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Tramita Obra"),
		EmailTestMode:    getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		CRMWebhookURL:    getEnv("CRM_WEBHOOK_URL", ""),
		ChatWebhookURL:   getEnv("CHAT_WEBHOOK_URL", ""),
		AllowedOrigins:   strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:           getEnv("APP_URL", "http://localhost:8080"),
		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageRegion:    getEnv("STORAGE_REGION", "auto"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY_ID", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET_NAME", ""),
		StoragePublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}
