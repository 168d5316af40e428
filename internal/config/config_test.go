package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
api:
  base_url: "https://api.example.com"
storage:
  profile_path: "data/profile.db"
redis:
  address: "localhost:6379"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("expected base_url https://api.example.com, got %s", cfg.API.BaseURL)
	}

	// Defaults
	if cfg.API.AdminBaseURL != cfg.API.BaseURL {
		t.Errorf("expected admin_base_url to default to base_url, got %s", cfg.API.AdminBaseURL)
	}
	if cfg.Payment.SuccessMessage != "Payment verified successfully" {
		t.Errorf("unexpected success_message: %s", cfg.Payment.SuccessMessage)
	}
	if cfg.Payment.Currency != "INR" {
		t.Errorf("unexpected currency: %s", cfg.Payment.Currency)
	}
	if cfg.UI.PaginationSize != 8 {
		t.Errorf("expected pagination_size default 8, got %d", cfg.UI.PaginationSize)
	}
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("TEST_SLOTIFY_URL", "https://env.example.com")
	t.Setenv("TEST_ADMIN_URL", "https://admin.example.com")

	yamlContent := `
api:
  base_url: ${TEST_SLOTIFY_URL}
  admin_base_url: ${TEST_ADMIN_URL}
storage:
  profile_path: "data/profile.db"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.API.BaseURL != "https://env.example.com" {
		t.Errorf("env expansion failed, got %s", cfg.API.BaseURL)
	}
	if cfg.API.AdminBaseURL != "https://admin.example.com" {
		t.Errorf("admin override not applied, got %s", cfg.API.AdminBaseURL)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing base_url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "missing profile_path",
			mutate:  func(c *Config) { c.Storage.ProfilePath = "" },
			wantErr: true,
		},
		{
			name: "polling without interval",
			mutate: func(c *Config) {
				c.Notifications.PollEnabled = true
				c.Notifications.PollIntervalSeconds = -1
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.API.BaseURL = "https://api.example.com"
			cfg.Storage.ProfilePath = "data/profile.db"
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
