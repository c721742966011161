package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("SMTP_PORT", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want 587", cfg.SMTPPort)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USE_TLS", "true")
	t.Setenv("GENERATOR_URL", "http://generator:8100")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("SMTPPort = %d, want 2525", cfg.SMTPPort)
	}
	if !cfg.SMTPUseTLS {
		t.Error("SMTPUseTLS = false, want true")
	}
	if cfg.GeneratorURL != "http://generator:8100" {
		t.Errorf("GeneratorURL = %q", cfg.GeneratorURL)
	}
}

func TestEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	if cfg := Load(); cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want default 587", cfg.SMTPPort)
	}
}
