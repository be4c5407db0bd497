package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
type Config struct {
	Port            string
	MongoURI        string
	MongoDatabase   string
	JWTSecret       string
	StripeSecretKey string
	CORSOrigins     []string
	LogLevel        string
	LogPretty       bool
}

// Load reads a .env file if one exists and then the process environment.
// MONGO_URI and JWT_SECRET have no sane default and are required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getenv("PORT", "5000"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDatabase:   getenv("MONGO_DATABASE", "doctors-portal"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}

	if origins := getenv("CORS_ORIGINS", "http://localhost:3000"); origins != "" {
		cfg.CORSOrigins = strings.Split(origins, ",")
	}
	if pretty, err := strconv.ParseBool(getenv("LOG_PRETTY", "false")); err == nil {
		cfg.LogPretty = pretty
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
