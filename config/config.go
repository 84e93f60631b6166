package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AWS      AWSConfig
	SMS      SMSConfig
	Admin    AdminConfig
	Event    EventConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string // if set, used as-is (e.g. postgres://localhost:5432/gilmo?sslmode=disable)
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis connection settings. Empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AWSConfig holds AWS credentials and the registration photo bucket.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PhotoBucket     string
}

// SMSConfig holds the outbound SMS gateway credentials and sender line.
// The key/secret pair signs the Authorization header; Sender is the from-number.
type SMSConfig struct {
	APIKey    string
	APISecret string
	Sender    string
	SendURL   string
}

// AdminConfig holds the admin login credential and JWT settings.
type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt hash of the admin password
	JWTSecret    string
	JWTExpireHrs int
}

// EventConfig holds the per-gender birth-year eligibility windows.
type EventConfig struct {
	MaleYearMin   int
	MaleYearMax   int
	FemaleYearMin int
	FemaleYearMax int
}

// DSN returns the PostgreSQL connection string.
// If DatabaseConfig.URL is set (e.g. DATABASE_URL env), it is used as-is; otherwise built from components.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", "postgres://localhost:5432/gilmo?sslmode=disable"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "gilmo"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "ap-northeast-2"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			PhotoBucket:     getEnv("AWS_S3_PHOTO_BUCKET", "registrations"),
		},
		SMS: SMSConfig{
			APIKey:    getEnv("SMS_API_KEY", ""),
			APISecret: getEnv("SMS_API_SECRET", ""),
			Sender:    getEnv("SMS_SENDER", ""),
			SendURL:   getEnv("SMS_SEND_URL", "https://api.solapi.com/messages/v4/send-many"),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET", "change-me-in-production"),
			JWTExpireHrs: getEnvInt("JWT_EXPIRE_HOURS", 24),
		},
		Event: EventConfig{
			MaleYearMin:   getEnvInt("ELIGIBLE_MALE_YEAR_MIN", 1993),
			MaleYearMax:   getEnvInt("ELIGIBLE_MALE_YEAR_MAX", 2006),
			FemaleYearMin: getEnvInt("ELIGIBLE_FEMALE_YEAR_MIN", 1995),
			FemaleYearMax: getEnvInt("ELIGIBLE_FEMALE_YEAR_MAX", 2008),
		},
	}
	return cfg, nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
