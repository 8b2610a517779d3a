package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Storage  StorageConfig  `envPrefix:"STORAGE_"`
	Email    EmailConfig    `envPrefix:"EMAIL_"`
	AI       AIConfig       `envPrefix:"AI_"`
}

type ServerConfig struct {
	Host        string `env:"HOST" envDefault:"0.0.0.0"`
	Port        int    `env:"PORT" envDefault:"8080"`
	Secure      bool   `env:"SECURE" envDefault:"false"` // HTTPS-only cookies
	Environment string `env:"ENV" envDefault:"development"`
}

type DatabaseConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"chongi"`
	Password string `env:"PASSWORD" envDefault:"chongi"`
	DBName   string `env:"NAME" envDefault:"chongi"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

type RedisConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// StorageConfig points at an S3/Supabase-style object store that serves
// uploaded images back over public URLs.
type StorageConfig struct {
	BaseURL string `env:"BASE_URL"`
	Bucket  string `env:"BUCKET" envDefault:"user-uploads"`
	APIKey  string `env:"API_KEY"`
}

type EmailConfig struct {
	Provider     string `env:"PROVIDER" envDefault:"console"` // "resend" or "console"
	FromAddress  string `env:"FROM_ADDRESS" envDefault:"noreply@chongi.app"`
	FromName     string `env:"FROM_NAME" envDefault:"Chọn Gì?"`
	BaseURL      string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
}

type AIConfig struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration from the environment, with an optional .env file
// for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
