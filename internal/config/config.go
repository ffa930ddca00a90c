// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"daily-broadcast/pkg/db" // Import db package for its Config struct
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort     string
	LogLevel       string
	Location       *time.Location // Calendar of "today"
	StoreDriver    string         // StoreMemory or StorePostgres
	RequestTimeout time.Duration
	MetricsEnabled bool
	DB             db.Config
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("timezone", "") // process local time
	v.SetDefault("store_driver", StoreMemory)
	v.SetDefault("request_timeout", "15s")
	v.SetDefault("metrics_enabled", true)

	// Only read by the postgres driver; defaults suit local development.
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "user")
	v.SetDefault("db_password", "password")
	v.SetDefault("db_name", "broadcastdb")
	v.SetDefault("db_sslmode", "disable")

	cfg := &AppConfig{
		ServerPort:     v.GetString("server_port"),
		LogLevel:       v.GetString("log_level"),
		StoreDriver:    strings.ToLower(strings.TrimSpace(v.GetString("store_driver"))),
		MetricsEnabled: v.GetBool("metrics_enabled"),
	}

	if cfg.ServerPort == "" {
		return nil, fmt.Errorf("invalid SERVER_PORT: empty")
	}

	switch cfg.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: want %q or %q", cfg.StoreDriver, StoreMemory, StorePostgres)
	}

	loc, err := loadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	timeout, err := time.ParseDuration(v.GetString("request_timeout"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q", v.GetString("request_timeout"))
	}
	cfg.RequestTimeout = timeout

	dbPort := v.GetInt("db_port")
	if dbPort <= 0 || dbPort > 65535 {
		return nil, fmt.Errorf("invalid DB_PORT %q", v.GetString("db_port"))
	}
	cfg.DB = db.Config{
		Host:     v.GetString("db_host"),
		Port:     dbPort,
		User:     v.GetString("db_user"),
		Password: v.GetString("db_password"),
		DBName:   v.GetString("db_name"),
		SSLMode:  v.GetString("db_sslmode"),
	}

	return cfg, nil
}

func loadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	default:
		return time.LoadLocation(name)
	}
}
