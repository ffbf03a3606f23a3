package generation

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/internal/gemini"
	"codeberg.org/iamhere/server/internal/logger"
)

const (
	// deterministic placeholder served when generation exhausts its retries
	fallbackImageURL = "https://picsum.photos/800/800?random=%d"

	// how long a persistence transaction may run after the response is ready
	persistTimeout = 10 * time.Second
)

func NewService(gen Generator, rec Recorder, ledger Ledger, dailyLimit int) *Service {
	return &Service{
		generator: gen,
		recorder:  rec,
		ledger:    ledger,
		limit:     dailyLimit,
	}
}

func (s *Service) DailyLimit() int {
	return s.limit
}

// Generate runs one request through the full pipeline. Stage order is fixed:
// validation short-circuits before any quota read or external call, the quota
// rejection happens before the generation service is touched, and persistence
// failures never fail the request once an image exists.
func (s *Service) Generate(ctx context.Context, userID string, in Input) (*Output, error) {
	loc, err := ParseLocation(in.LocationJSON)
	if err != nil {
		return nil, err
	}

	if err := ValidateImage(in.Image, in.ImageMIMEType); err != nil {
		return nil, err
	}

	// advisory quota read; the atomic increment inside Record is the
	// authoritative enforcement point
	prior, err := s.ledger.CountForDay(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to read daily usage: %w", err)
	}

	if prior >= s.limit {
		return nil, ErrQuotaExceeded
	}

	if !s.generator.Available(ctx) {
		return nil, ErrUpstreamUnavailable
	}

	basePrompt := fmt.Sprintf(
		"Generate a beautiful travel photo of this person at %s. Keep the original composition and style while enhancing the visual appeal.",
		loc.Address,
	)

	result, genErr := s.generator.Generate(ctx, gemini.Request{
		Prompt:        basePrompt,
		Location:      loc.Address,
		InputImage:    in.Image,
		InputMIMEType: in.ImageMIMEType,
	})

	var imageURL, finalPrompt string

	fallback := false

	if genErr == nil {
		imageURL = "data:" + result.MIMEType + ";base64," + result.ImageData
		finalPrompt = result.Prompt
	} else {
		// degrade to a placeholder rather than failing the request; the
		// quota unit is still consumed below
		logger.ErrorErr(genErr, "image generation failed, serving placeholder",
			"user_id", userID,
		)

		imageURL = fmt.Sprintf(fallbackImageURL, time.Now().UnixMilli())
		finalPrompt = fmt.Sprintf("%s [generation failed, placeholder used: %v]", basePrompt, genErr)
		fallback = true
	}

	out := &Output{
		ImageURL: imageURL,
		Prompt:   finalPrompt,
		Fallback: fallback,
	}

	// best-effort persistence on a detached context: a client disconnect
	// must not abort the transaction mid-write
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	img, newCount, perr := s.recorder.Record(pctx, images.RecordParams{
		UserID:      userID,
		ImageURL:    imageURL,
		Prompt:      finalPrompt,
		Address:     loc.Address,
		LocationLat: loc.Lat,
		LocationLng: loc.Lng,
	})

	if perr != nil {
		logger.ErrorErr(perr, "failed to persist generation",
			"user_id", userID,
			"operation", "record_generation",
		)

		out.RemainingUsage = s.limit - prior - 1

		return out, nil
	}

	out.Image = img
	out.Persisted = true
	out.RemainingUsage = s.limit - newCount

	if out.RemainingUsage < 0 {
		out.RemainingUsage = 0
	}

	return out, nil
}
