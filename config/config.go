package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Session SessionConfig
	JWT     JWTConfig
	Uploads UploadsConfig
	SMS     SMSConfig
}

type ServerConfig struct {
	Port string
	Env  string
	// BaseURL is used when building absolute links (claim URLs in SMS).
	BaseURL string
}

type DBConfig struct {
	Path string
}

type SessionConfig struct {
	Secret string
	MaxAge int // seconds
}

type JWTConfig struct {
	SigningKey string
	Issuer     string
}

type UploadsConfig struct {
	Dir     string
	BaseURL string
}

type SMSConfig struct {
	TelnyxAPIKey string
	FromNumber   string
}

// Load returns application configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			Env:     getEnv("ENV", "development"),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
		},
		DB: DBConfig{
			Path: getEnv("DB_PATH", "portal.db"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			MaxAge: getEnvInt("SESSION_MAX_AGE", 86400), // 1 day
		},
		JWT: JWTConfig{
			SigningKey: getEnv("JWT_SIGNING_KEY", ""),
			Issuer:     getEnv("JWT_ISSUER", "portal.ozarkhomeloans.com"),
		},
		Uploads: UploadsConfig{
			Dir:     getEnv("UPLOADS_DIR", "uploads"),
			BaseURL: getEnv("UPLOADS_BASE_URL", "/uploads"),
		},
		SMS: SMSConfig{
			TelnyxAPIKey: getEnv("TELNYX_API_KEY", ""),
			FromNumber:   getEnv("TELNYX_FROM_NUMBER", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
