package config

import "testing"

func TestLoadRequiresAdzunaCredentials(t *testing.T) {
	t.Setenv("APP_ID", "")
	t.Setenv("API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without API credentials")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ID", "id")
	t.Setenv("API_KEY", "key")
	t.Setenv("EMAIL_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.EmailHost != "smtp.gmail.com" || cfg.EmailPort != 587 {
		t.Errorf("email defaults = %s:%d", cfg.EmailHost, cfg.EmailPort)
	}
	if cfg.SheetName != "job_status" {
		t.Errorf("sheet name default = %q", cfg.SheetName)
	}
	if cfg.DatabasePath != "jobs.db" || cfg.UploadsDir != "uploads" || cfg.LettersDir != "generated_documents" {
		t.Errorf("path defaults = %q %q %q", cfg.DatabasePath, cfg.UploadsDir, cfg.LettersDir)
	}
	if cfg.AdzunaBaseURL != defaultAdzunaURL {
		t.Errorf("base url default = %q", cfg.AdzunaBaseURL)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("APP_ID", "id")
	t.Setenv("API_KEY", "key")
	t.Setenv("EMAIL_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid EMAIL_PORT")
	}
}
