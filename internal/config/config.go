package config

import (
	"fmt"
	"os"
	"strconv"
)

const defaultAdzunaURL = "https://api.adzuna.com/v1/api/jobs/gb/search/1"

// Config collects every credential and endpoint the services need.
// Values come from environment variables; a .env file is loaded in main.
type Config struct {
	// Adzuna job-search API
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaBaseURL string

	// SMTP delivery
	EmailUser     string
	EmailPassword string
	EmailHost     string
	EmailPort     int

	// Gemini cover-letter generation (optional; template mode works without it)
	GeminiAPIKey string

	// Google Sheets tracker
	SpreadsheetID string
	SheetName     string

	// Local paths
	DatabasePath string
	UploadsDir   string
	LettersDir   string
}

// Load reads configuration from the environment. The Adzuna credentials are
// mandatory; everything else has a default or is validated at point of use.
func Load() (*Config, error) {
	cfg := &Config{
		AdzunaAppID:   os.Getenv("APP_ID"),
		AdzunaAppKey:  os.Getenv("API_KEY"),
		AdzunaBaseURL: envOr("ADZUNA_BASE_URL", defaultAdzunaURL),

		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailHost:     envOr("EMAIL_HOST", "smtp.gmail.com"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		SpreadsheetID: os.Getenv("SPREADSHEET_ID"),
		SheetName:     envOr("SHEET_NAME", "job_status"),

		DatabasePath: envOr("JOBS_DB", "jobs.db"),
		UploadsDir:   envOr("UPLOADS_DIR", "uploads"),
		LettersDir:   envOr("LETTERS_DIR", "generated_documents"),
	}

	if cfg.AdzunaAppID == "" || cfg.AdzunaAppKey == "" {
		return nil, fmt.Errorf("API credentials (APP_ID and API_KEY) must be set in the environment")
	}

	port := envOr("EMAIL_PORT", "587")
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_PORT %q: %w", port, err)
	}
	cfg.EmailPort = p

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
