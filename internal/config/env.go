package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "5000"
	defaultAllowedOrigin = "http://localhost:3000"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	sessionSecret := os.Getenv("SESSION_SECRET")
	mentorAPIURL := os.Getenv("MENTOR_API_URL")
	environment := os.Getenv("ENVIRONMENT")
	port := os.Getenv("PORT")
	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	if mentorAPIURL == "" {
		return nil, fmt.Errorf("MENTOR_API_URL environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	if port == "" {
		port = defaultPort
	}

	if allowedOrigin == "" {
		allowedOrigin = defaultAllowedOrigin
	}

	return &Config{
		DatabaseURL:   databaseURL,
		JWTSecret:     jwtSecret,
		SessionSecret: sessionSecret,
		MentorAPIURL:  mentorAPIURL,
		Environment:   environment,
		Port:          port,
		AllowedOrigin: allowedOrigin,
	}, nil
}
