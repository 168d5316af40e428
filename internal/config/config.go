package config

import (
	"errors"
	"fmt"
	"os"

	"slotify/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App           AppConfig           `yaml:"app"`
	API           APIConfig           `yaml:"api"`
	Payment       PaymentConfig       `yaml:"payment"`
	Storage       StorageConfig       `yaml:"storage"`
	Redis         RedisConfig         `yaml:"redis"`
	Notifications NotificationConfig  `yaml:"notifications"`
	UI            UIConfig            `yaml:"ui"`
	Logging       LoggingConfig       `yaml:"logging"`
	Monitoring    MonitoringConfig    `yaml:"monitoring"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type APIConfig struct {
	// BaseURL is the remote REST backend serving the marketplace.
	BaseURL string `yaml:"base_url"`
	// AdminBaseURL overrides the admin dashboard target. Substituted from the
	// environment at load time; defaults to BaseURL.
	AdminBaseURL string `yaml:"admin_base_url"`
}

type PaymentConfig struct {
	// Key is the gateway publishable key handed to the external widget.
	Key      string `yaml:"key"`
	Currency string `yaml:"currency"`
	// SuccessMessage is the exact verification response that authorizes
	// creating a confirmed booking. Anything else is a failed payment.
	SuccessMessage string `yaml:"success_message"`
}

type StorageConfig struct {
	ProfilePath string `yaml:"profile_path"`
	ExportPath  string `yaml:"export_path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type NotificationConfig struct {
	PollEnabled         bool `yaml:"poll_enabled"`
	PollIntervalSeconds int  `yaml:"poll_interval_seconds"`
	PollBurst           int  `yaml:"poll_burst"`
}

type UIConfig struct {
	PaginationSize    int `yaml:"pagination_size"`
	RateLimitCommands int `yaml:"rate_limit_commands"`
	RateLimitWindow   int `yaml:"rate_limit_window"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

func Load(configPath string) (*Config, error) {
	// .env необязателен, переменные могут приходить из окружения
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api base_url is required")
	}

	if c.Storage.ProfilePath == "" {
		return errors.New("storage profile_path is required")
	}

	if c.Notifications.PollEnabled && c.Notifications.PollIntervalSeconds <= 0 {
		return errors.New("notifications poll_interval_seconds must be positive")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "slotify"
	}
	if c.API.AdminBaseURL == "" {
		c.API.AdminBaseURL = c.API.BaseURL
	}
	if c.Payment.Currency == "" {
		c.Payment.Currency = "INR"
	}
	if c.Payment.SuccessMessage == "" {
		c.Payment.SuccessMessage = "Payment verified successfully"
	}
	if c.Storage.ExportPath == "" {
		c.Storage.ExportPath = "exports"
	}
	if c.Notifications.PollIntervalSeconds == 0 {
		c.Notifications.PollIntervalSeconds = models.DefaultPollIntervalSeconds
	}
	if c.Notifications.PollBurst <= 0 {
		c.Notifications.PollBurst = 1
	}
	if c.UI.PaginationSize == 0 {
		c.UI.PaginationSize = models.DefaultPaginationSize
	}
	if c.UI.RateLimitCommands == 0 {
		c.UI.RateLimitCommands = models.RateLimitCommands
	}
	if c.UI.RateLimitWindow == 0 {
		c.UI.RateLimitWindow = models.RateLimitWindow
	}
}
