package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the security core.
// It merges file defaults and environment overrides to support both local
// and deployed runs.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL   string
	RedisURL      string
	MongoURI      string
	MongoDatabase string

	BcryptCost int

	MaxLoginAttempts int
	LockoutDuration  time.Duration
	SessionTTL       time.Duration

	AttachmentAllowList []string
	AgencyAPIKey        string
	TOTPIssuer          string

	MaxDBConns int32
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay
// internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL   string `yaml:"postgres_url"`
		RedisURL      string `yaml:"redis_url"`
		MongoURI      string `yaml:"mongo_uri"`
		MongoDatabase string `yaml:"mongo_database"`
	} `yaml:"dependencies"`
	Security struct {
		MaxLoginAttempts       int      `yaml:"max_login_attempts"`
		LockoutDurationMinutes int      `yaml:"lockout_duration_minutes"`
		SessionDurationHours   int      `yaml:"session_duration_hours"`
		AttachmentAllowList    []string `yaml:"attachment_allow_list"`
		TOTPIssuer             string   `yaml:"totp_issuer"`
	} `yaml:"security"`
}

// LoadConfig resolves configuration in priority order: defaults -> file ->
// env. A .env file in the working directory is folded into the environment
// first, which keeps local bootstrap to a single file.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServiceID:           "Guardline-Security-Core",
		HTTPPort:            8080,
		GRPCPort:            9090,
		MongoDatabase:       "guardline",
		BcryptCost:          12,
		MaxLoginAttempts:    5,
		LockoutDuration:     15 * time.Minute,
		SessionTTL:          24 * time.Hour,
		AttachmentAllowList: []string{"jpg", "jpeg", "png", "pdf", "doc", "docx"},
		TOTPIssuer:          "Guardline",
		MaxDBConns:          20,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Dependencies.MongoURI != "" {
			cfg.MongoURI = f.Dependencies.MongoURI
		}
		if f.Dependencies.MongoDatabase != "" {
			cfg.MongoDatabase = f.Dependencies.MongoDatabase
		}
		if f.Security.MaxLoginAttempts > 0 {
			cfg.MaxLoginAttempts = f.Security.MaxLoginAttempts
		}
		if f.Security.LockoutDurationMinutes > 0 {
			cfg.LockoutDuration = time.Duration(f.Security.LockoutDurationMinutes) * time.Minute
		}
		if f.Security.SessionDurationHours > 0 {
			cfg.SessionTTL = time.Duration(f.Security.SessionDurationHours) * time.Hour
		}
		if len(f.Security.AttachmentAllowList) > 0 {
			cfg.AttachmentAllowList = f.Security.AttachmentAllowList
		}
		if f.Security.TOTPIssuer != "" {
			cfg.TOTPIssuer = f.Security.TOTPIssuer
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.MongoURI = envOrDefault("MONGO_URI", cfg.MongoURI)
	cfg.MongoDatabase = envOrDefault("MONGO_DATABASE", cfg.MongoDatabase)
	cfg.AgencyAPIKey = envOrDefault("AGENCY_API_KEY", cfg.AgencyAPIKey)
	cfg.TOTPIssuer = envOrDefault("TOTP_ISSUER", cfg.TOTPIssuer)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))

	cfg.MaxLoginAttempts = envInt("MAX_LOGIN_ATTEMPTS", cfg.MaxLoginAttempts)
	cfg.LockoutDuration = time.Duration(envInt("LOCKOUT_DURATION_MINUTES", int(cfg.LockoutDuration.Minutes()))) * time.Minute
	cfg.SessionTTL = time.Duration(envInt("SESSION_DURATION_HOURS", int(cfg.SessionTTL.Hours()))) * time.Hour
	cfg.AttachmentAllowList = envCSV("ATTACHMENT_ALLOW_LIST", cfg.AttachmentAllowList)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("missing MONGO_URI")
	}
	if cfg.MaxLoginAttempts < 1 {
		return Config{}, fmt.Errorf("MAX_LOGIN_ATTEMPTS must be positive")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envCSV parses comma-separated env vars and removes empty segments.
func envCSV(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
	}
	if len(parts) == 0 {
		return fallback
	}
	return parts
}
