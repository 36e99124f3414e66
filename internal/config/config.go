package config

import (
	"errors"
	"fmt"
	"os"

	"hotelier/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Storage    StorageConfig    `yaml:"storage"`
	Backup     BackupConfig     `yaml:"backup"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Billing    BillingConfig    `yaml:"billing"`
	Exports    ExportConfig     `yaml:"exports"`
	Rooms      []models.Room    `yaml:"rooms"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Schedule      string `yaml:"schedule"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type BillingConfig struct {
	// CancellationFeePercent is charged against the full stay when a
	// checked-in booking is cancelled. Cancellations before check-in
	// are always free. An explicit 0 makes all cancellations free;
	// omitting the key falls back to the default.
	CancellationFeePercent *float64 `yaml:"cancellation_fee_percent"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; when present its variables feed os.ExpandEnv below.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

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
	if c.Storage.DataDir == "" {
		return errors.New("storage data_dir is required")
	}

	if fee := c.Billing.CancellationFeePercent; fee != nil && (*fee < 0 || *fee > 100) {
		return fmt.Errorf("billing cancellation_fee_percent must be within [0, 100], got %v", *fee)
	}

	return ValidateRooms(c.Rooms)
}

// ValidateRooms rejects seed rooms with missing keys, duplicate numbers
// or non-positive rates.
func ValidateRooms(rooms []models.Room) error {
	ids := make(map[string]bool)
	numbers := make(map[string]bool)
	for _, room := range rooms {
		if room.ID == "" {
			return fmt.Errorf("room '%s' has empty ID", room.Number)
		}
		if room.Number == "" {
			return fmt.Errorf("room '%s' has empty number", room.ID)
		}
		if ids[room.ID] {
			return fmt.Errorf("duplicate room ID found: %s", room.ID)
		}
		if numbers[room.Number] {
			return fmt.Errorf("duplicate room number found: %s", room.Number)
		}
		if room.Rate <= 0 {
			return fmt.Errorf("room '%s' has non-positive rate %v", room.Number, room.Rate)
		}
		if room.Status != "" && !room.Status.Valid() {
			return fmt.Errorf("room '%s' has unknown status %q", room.Number, room.Status)
		}
		ids[room.ID] = true
		numbers[room.Number] = true
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "hotelier"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Billing.CancellationFeePercent == nil {
		fee := models.DefaultCancellationFeePercent
		c.Billing.CancellationFeePercent = &fee
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
	for i := range c.Rooms {
		if c.Rooms[i].Status == "" {
			c.Rooms[i].Status = models.RoomAvailable
		}
	}
}
