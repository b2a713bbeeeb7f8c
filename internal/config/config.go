package config

import (
	"os"
	"strings"
)

type Config struct {
	DatabaseURL         string
	RedisURL            string
	Port                string
	SessionSecret       string
	CorsOrigin          string // frontend origin; also the base of password-reset links
	SMTPHost            string
	SMTPPort            string
	SMTPUser            string
	SMTPPassword        string
	MailFrom            string // e.g. "The WIA <noreply@the-wia.xyz>"
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	Environment         string // ENV: production, development, etc.
}

func Load() *Config {
	return &Config{
		DatabaseURL:         getEnv("DATABASE_URL", "postgres://localhost:5432/wia?sslmode=disable"),
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379/0"),
		Port:                getEnv("PORT", "4000"),
		SessionSecret:       getEnv("SESSION_SECRET", "change-me-in-production"),
		CorsOrigin:          getEnv("CORS_ORIGIN", "http://localhost:3000"),
		SMTPHost:            getEnv("SMTP_HOST", "smtp-relay.sendinblue.com"),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPUser:            getEnv("SMTP_USER", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		MailFrom:            getEnv("MAIL_FROM", "The WIA <noreply@localhost>"),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		Environment:         strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
