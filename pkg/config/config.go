// Package config loads application configuration from the environment.
// main loads .env via godotenv before calling Load, so a local file and
// real environment variables both work.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Import   ImportConfig
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the PostgreSQL connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// ImportConfig holds import engine settings
type ImportConfig struct {
	// UploadDir is the directory uploads are read from and deleted
	// after a successful run.
	UploadDir string
	// MaxVouchers caps vouchers per run; excess is reported, not imported.
	MaxVouchers int
}

// Load reads configuration from environment variables with sane defaults
func Load() (*Config, error) {
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	maxVouchers, err := getEnvInt("IMPORT_MAX_VOUCHERS", 1000)
	if err != nil {
		return nil, err
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "tallybridge"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Import: ImportConfig{
			UploadDir:   getEnv("IMPORT_UPLOAD_DIR", "uploads"),
			MaxVouchers: maxVouchers,
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
