package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server Server
	Sheet  Sheet
	OCR    OCR
	SMTP   SMTP
}

// Server holds HTTP server configuration
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Sheet holds spreadsheet source configuration
type Sheet struct {
	SpreadsheetID   string
	RecordsGID      string
	LedgerGID       string
	RecordsRange    string
	LedgerRange     string
	CredentialsFile string
	FetchTimeout    time.Duration
}

// OCR holds the extraction endpoint configuration
type OCR struct {
	EndpointURL string
	APIKey      string
	Timeout     time.Duration
}

// SMTP holds outbound email configuration
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: Server{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Sheet: Sheet{
			SpreadsheetID:   getEnv("SHEET_ID", ""),
			RecordsGID:      getEnv("SHEET_RECORDS_GID", "0"),
			LedgerGID:       getEnv("SHEET_LEDGER_GID", ""),
			RecordsRange:    getEnv("SHEET_RECORDS_RANGE", "Records!A:H"),
			LedgerRange:     getEnv("SHEET_LEDGER_RANGE", "Ledger!A:I"),
			CredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
			FetchTimeout:    getEnvAsDuration("SHEET_FETCH_TIMEOUT", 60*time.Second),
		},
		OCR: OCR{
			EndpointURL: getEnv("OCR_URL", ""),
			APIKey:      getEnv("OCR_API_KEY", ""),
			Timeout:     getEnvAsDuration("OCR_TIMEOUT", 120*time.Second),
		},
		SMTP: SMTP{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
			Timeout:  getEnvAsDuration("SMTP_TIMEOUT", 30*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Sheet.SpreadsheetID == "" {
		return NewAppError("CONFIG_ERROR", "SHEET_ID is required", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
