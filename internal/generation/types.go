package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/internal/gemini"
)

var (
	// the user's daily generation cap is already reached
	ErrQuotaExceeded = errors.New("daily generation limit reached")

	// the generation service did not answer the availability probe
	ErrUpstreamUnavailable = errors.New("generation service unavailable")
)

// ValidationError reports malformed or missing request input
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Location is the parsed location payload from the client
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
	Name    string  `json:"name,omitempty"`
}

// Input is one inbound generation request after multipart decoding
type Input struct {
	Image         []byte
	ImageMIMEType string
	LocationJSON  string
}

// Output is what the caller renders back to the user
type Output struct {
	Image          *images.GeneratedImage // nil when persistence failed
	ImageURL       string
	Prompt         string
	RemainingUsage int
	Fallback       bool
	Persisted      bool
}

// produces images via the external generation service
type Generator interface {
	Generate(ctx context.Context, req gemini.Request) (*gemini.Result, error)
	Available(ctx context.Context) bool
}

// persists one generation together with its quota increment
type Recorder interface {
	Record(ctx context.Context, params images.RecordParams) (*images.GeneratedImage, int, error)
}

// reads the advisory usage count for a (user, day) pair
type Ledger interface {
	CountForDay(ctx context.Context, userID string, day time.Time) (int, error)
}

// Service sequences one generation request:
// validate, check quota, generate, persist best-effort, respond.
type Service struct {
	generator Generator
	recorder  Recorder
	ledger    Ledger
	limit     int
}
