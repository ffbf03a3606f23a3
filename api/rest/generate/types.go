package generate

import (
	"context"

	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/internal/generation"
)

// Service is the generation pipeline behind the endpoint
type Service interface {
	Generate(ctx context.Context, userID string, in generation.Input) (*generation.Output, error)
}

// Response is the success contract of POST /generate
type Response struct {
	ID             string                 `json:"id,omitempty"`
	ImageURL       string                 `json:"imageUrl"`
	Prompt         string                 `json:"prompt"`
	RemainingUsage int                    `json:"remainingUsage"`
	Fallback       bool                   `json:"fallback,omitempty"`
	GeneratedImage *images.GeneratedImage `json:"generatedImage,omitempty"`
}
