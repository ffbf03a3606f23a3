package main

import (
	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/iamhere/usage"
	"codeberg.org/iamhere/server/internal/config"
	"codeberg.org/iamhere/server/internal/gemini"
	"codeberg.org/iamhere/server/internal/generation"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config, imageRepo *images.Repository, usageRepo *usage.Repository) *Services {
	geminiClient := gemini.NewClient(gemini.Config{
		APIKey: cfg.GeminiAPIKey,
	})

	genService := generation.NewService(geminiClient, imageRepo, usageRepo, cfg.DailyLimit)

	return &Services{
		Gemini:     geminiClient,
		Generation: genService,
	}
}
