package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds token signing and login throttling settings.
type AuthConfig struct {
	JWTSecret       string `validate:"required,min=16"`
	TokenTTLHours   int    `validate:"gte=1,lte=720"`
	LoginRatePerMin int    `validate:"gte=1"`
}

// LogConfig selects the log sink. An empty File means stdout.
type LogConfig struct {
	Level      string `validate:"oneof=debug info warning error"`
	File       string
	MaxSizeMB  int `validate:"gte=1,lte=100"`
	MaxBackups int `validate:"gte=1,lte=10"`
	MaxAgeDays int `validate:"gte=1,lte=365"`
}

// WhatsAppConfig configures the outbound message gateway. An empty APIURL disables delivery.
type WhatsAppConfig struct {
	APIURL     string `validate:"omitempty,url"`
	APIToken   string
	Destino    string
	TimeoutSec int `validate:"gte=1"`
}

// RondaConfig holds patrol-specific tunables.
type RondaConfig struct {
	ToleranciaMin       int `validate:"gte=0,lte=720"`
	AliasesFile         string
	PresignExpiryMinute int `validate:"gte=1"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string `validate:"required"`
	Database DatabaseConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
	Log      LogConfig
	WhatsApp WhatsAppConfig
	Ronda    RondaConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "America/Sao_Paulo"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET", ""),
			TokenTTLHours:   getEnvInt("JWT_TTL_HOURS", 12),
			LoginRatePerMin: getEnvInt("LOGIN_RATE_PER_MIN", 10),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
		},
		WhatsApp: WhatsAppConfig{
			APIURL:     getEnv("WHATSAPP_API_URL", ""),
			APIToken:   getEnv("WHATSAPP_API_TOKEN", ""),
			Destino:    getEnv("WHATSAPP_DESTINO", ""),
			TimeoutSec: getEnvInt("WHATSAPP_TIMEOUT_SEC", 10),
		},
		Ronda: RondaConfig{
			ToleranciaMin:       getEnvInt("RONDA_TOLERANCIA_MIN", 30),
			AliasesFile:         getEnv("CONDOMINIO_ALIASES_FILE", ""),
			PresignExpiryMinute: getEnvInt("REPORT_PRESIGN_MINUTES", 15),
		},
	}
}

// Validate checks the struct tags of every section.
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
