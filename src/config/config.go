package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	BelvoSecretID       string
	BelvoSecretPassword string
	BelvoEnvironment    string

	BrevoAPIKey    string
	BrevoFromEmail string
	BrevoFromName  string
}

func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),

		BelvoSecretID:       getEnv("BELVO_SECRET_ID", ""),
		BelvoSecretPassword: getEnv("BELVO_SECRET_PASSWORD", ""),
		BelvoEnvironment:    getEnv("BELVO_ENVIRONMENT", "sandbox"),

		BrevoAPIKey:    getEnv("BREVO_API_KEY", ""),
		BrevoFromEmail: getEnv("BREVO_FROM_EMAIL", "noreply@glassfinance.com"),
		BrevoFromName:  getEnv("BREVO_FROM_NAME", "Glass Finance"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
