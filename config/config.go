package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBDriver string // "postgres" or "sqlite"
	DBName   string
	JWTKey   string

	RenderServiceURL     string // External certificate PDF renderer
	RenderTimeoutSeconds int    // Bound on a single render call

	CertificateDir string // Where rendered certificate documents are stored

	StatusSweepCron string // Optional cron spec for the storage-level status sweep; empty disables it
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:     getEnv("PORT", "3000"),
		DBDriver: getEnv("DB_DRIVER", "postgres"),
		DBName:   getEnv("DB_NAME", "volunect"),
		JWTKey:   getEnv("JWT_SECRET_KEY", "defaultSecret"),

		RenderServiceURL:     getEnv("RENDER_SERVICE_URL", "http://localhost:4000/render"),
		RenderTimeoutSeconds: getEnvInt("RENDER_TIMEOUT_SECONDS", 15),

		CertificateDir: getEnv("CERTIFICATE_DIR", "./certificates"),

		StatusSweepCron: getEnv("STATUS_SWEEP_CRON", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.DBName == "volunect" {
		log.Println("Warning: Using default DBName. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
