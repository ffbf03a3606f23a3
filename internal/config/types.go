package config

type Config struct {
	DatabaseURL  string
	GeminiAPIKey string
	JWTSecret    string
	Environment  string
	BaseURL      string

	// daily generation cap per user
	DailyLimit int
}
