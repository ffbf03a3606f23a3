package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultDailyLimit = 100

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	geminiKey := os.Getenv("GOOGLE_AI_API_KEY")
	jwtSecret := os.Getenv("JWT_SECRET")
	sessionSecret := os.Getenv("SESSION_SECRET")
	environment := os.Getenv("ENVIRONMENT")
	baseURL := os.Getenv("BASE_URL")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if geminiKey == "" {
		return nil, fmt.Errorf("GOOGLE_AI_API_KEY environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	dailyLimit := defaultDailyLimit
	if limitStr := os.Getenv("DAILY_GENERATION_LIMIT"); limitStr != "" {
		val, err := strconv.Atoi(limitStr)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("DAILY_GENERATION_LIMIT must be a positive integer, got %q", limitStr)
		}

		dailyLimit = val
	}

	return &Config{
		DatabaseURL:  databaseURL,
		GeminiAPIKey: geminiKey,
		JWTSecret:    jwtSecret,
		Environment:  environment,
		BaseURL:      baseURL,
		DailyLimit:   dailyLimit,
	}, nil
}
