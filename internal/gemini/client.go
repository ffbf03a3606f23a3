package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"codeberg.org/iamhere/server/internal/logger"
	"golang.org/x/time/rate"
)

const (
	generateContentURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

	defaultModel      = "gemini-2.5-flash-image-preview"
	defaultMaxRetries = 3
	defaultBaseDelay  = 1 * time.Second
	defaultMaxDelay   = 10 * time.Second
)

// shared HTTP client for Gemini API calls
var geminiHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for Gemini API calls (10 requests/second with burst capacity of 5)
var geminiRateLimiter = rate.NewLimiter(10, 5)

// calls the Gemini generateContent API with retry and exponential backoff
type Client struct {
	config     Config
	httpClient *http.Client
	baseURL    string

	// sleeps between attempts; swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(config Config) *Client {
	if config.Model == "" {
		config.Model = defaultModel
	}

	if config.MaxRetries == 0 {
		config.MaxRetries = defaultMaxRetries
	}

	if config.BaseDelay == 0 {
		config.BaseDelay = defaultBaseDelay
	}

	if config.MaxDelay == 0 {
		config.MaxDelay = defaultMaxDelay
	}

	return &Client{
		config:     config,
		httpClient: geminiHTTPClient,
		baseURL:    fmt.Sprintf(generateContentURL, config.Model),
		sleep:      sleepContext,
	}
}

func (c *Client) Model() string {
	return c.config.Model
}

// attempts to produce a generated image, retrying with exponential backoff.
// Every attempt is independent; a 200 response without inline image data
// counts as a retryable failure. After exhaustion the last error is returned.
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	prompt := buildPrompt(req)

	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		result, err := c.generateOnce(ctx, prompt, req.InputImage, req.InputMIMEType)
		if err == nil {
			return result, nil
		}

		lastErr = err

		logger.Warn("gemini attempt failed",
			"attempt", attempt+1,
			"max_attempts", c.config.MaxRetries+1,
			"error", err,
		)

		if attempt == c.config.MaxRetries {
			break
		}

		if err := c.sleep(ctx, c.retryDelay(attempt)); err != nil {
			return nil, fmt.Errorf("generation aborted: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to generate image after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

// reports whether the generation service currently responds with candidates
func (c *Client) Available(ctx context.Context) bool {
	if c.config.APIKey == "" {
		return false
	}

	resp, err := c.call(ctx, generateRequest{
		Contents: []requestContent{
			{Parts: []requestPart{{Text: "A simple red circle on white background"}}},
		},
	})

	if err != nil {
		logger.Warn("gemini availability check failed", "error", err)
		return false
	}

	return len(resp.Candidates) > 0
}

// performs a single generation attempt
func (c *Client) generateOnce(ctx context.Context, prompt string, image []byte, mimeType string) (*Result, error) {
	parts := []requestPart{{Text: prompt}}

	if len(image) > 0 {
		parts = append(parts, requestPart{
			InlineData: &inlineData{
				MIMEType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(image),
			},
		})
	}

	resp, err := c.call(ctx, generateRequest{
		Contents: []requestContent{{Parts: parts}},
	})

	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			result := &Result{
				ImageData:   part.InlineData.Data,
				MIMEType:    part.InlineData.MIMEType,
				Prompt:      prompt,
				Model:       c.config.Model,
				GeneratedAt: time.Now().UTC(),
			}

			if result.MIMEType == "" {
				result.MIMEType = "image/png"
			}

			return result, nil
		}
	}

	return nil, fmt.Errorf("no image data found in response")
}

// sends one generateContent request
func (c *Client) call(ctx context.Context, reqBody generateRequest) (*generateResponse, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	// rate limiting
	if err := geminiRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &genResp, nil
}

// computes the backoff delay for an attempt: min(base * 2^attempt, max)
func (c *Client) retryDelay(attempt int) time.Duration {
	delay := c.config.BaseDelay << uint(attempt)

	if delay > c.config.MaxDelay || delay <= 0 {
		return c.config.MaxDelay
	}

	return delay
}

// sleeps for d unless the context is canceled first
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
