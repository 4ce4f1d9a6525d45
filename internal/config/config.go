package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MigrationsPath  string
}

type AgentConfig struct {
	GraphQLURL        string
	HeartbeatLog      string
	LowStockLog       string
	RemindersLog      string
	ReportLog         string
	HeartbeatInterval time.Duration
	LowStockInterval  time.Duration
	RemindersInterval time.Duration
	ReportInterval    time.Duration
}

type Config struct {
	App struct {
		Port string
	}
	Postgres PostgresConfig
	Agent    AgentConfig
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. Database settings are required; everything else has a
// default.
func Load(path string) (*Config, error) {
	if path != "" {
		err := godotenv.Load(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}
	cfg.App.Port = getEnv("APP_PORT", "8080")

	cfg.Postgres.Host = mustEnv("DB_HOST")
	cfg.Postgres.Port = mustEnv("DB_PORT")
	cfg.Postgres.User = mustEnv("DB_USER")
	cfg.Postgres.Password = mustEnv("DB_PASSWORD")
	cfg.Postgres.DBName = mustEnv("DB_NAME")
	cfg.Postgres.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Postgres.MaxConns = int32(getEnvInt("DB_MAX_CONNS", 10))
	cfg.Postgres.MinConns = int32(getEnvInt("DB_MIN_CONNS", 2))
	cfg.Postgres.MaxConnLifetime = getEnvDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute)
	cfg.Postgres.MigrationsPath = getEnv("DB_MIGRATIONS_PATH", "migrations")

	cfg.Agent.GraphQLURL = getEnv("CRM_GRAPHQL_URL", "http://localhost:8080/graphql")
	cfg.Agent.HeartbeatLog = getEnv("CRM_HEARTBEAT_LOG", "/tmp/crm_heartbeat_log.txt")
	cfg.Agent.LowStockLog = getEnv("CRM_LOW_STOCK_LOG", "/tmp/low_stock_updates_log.txt")
	cfg.Agent.RemindersLog = getEnv("CRM_REMINDERS_LOG", "/tmp/order_reminders_log.txt")
	cfg.Agent.ReportLog = getEnv("CRM_REPORT_LOG", "/tmp/crm_report_log.txt")
	cfg.Agent.HeartbeatInterval = getEnvDuration("CRM_HEARTBEAT_INTERVAL", 5*time.Minute)
	cfg.Agent.LowStockInterval = getEnvDuration("CRM_LOW_STOCK_INTERVAL", 12*time.Hour)
	cfg.Agent.RemindersInterval = getEnvDuration("CRM_REMINDERS_INTERVAL", 24*time.Hour)
	cfg.Agent.ReportInterval = getEnvDuration("CRM_REPORT_INTERVAL", 7*24*time.Hour)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("%s is required", key)
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, raw)
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s must be a duration, got %q", key, raw)
	}
	return v
}
