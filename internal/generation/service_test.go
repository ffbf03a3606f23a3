package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/internal/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDailyLimit = 100

// implements Generator for testing
type mockGenerator struct {
	generateFunc  func(ctx context.Context, req gemini.Request) (*gemini.Result, error)
	availableFunc func(ctx context.Context) bool

	generateCalls  int
	availableCalls int
}

func (m *mockGenerator) Generate(ctx context.Context, req gemini.Request) (*gemini.Result, error) {
	m.generateCalls++

	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}

	return &gemini.Result{
		ImageData:   "aGVsbG8=",
		MIMEType:    "image/png",
		Prompt:      req.Prompt,
		Model:       "mock-model",
		GeneratedAt: time.Now(),
	}, nil
}

func (m *mockGenerator) Available(ctx context.Context) bool {
	m.availableCalls++

	if m.availableFunc != nil {
		return m.availableFunc(ctx)
	}

	return true
}

// implements Recorder for testing
type mockRecorder struct {
	recordFunc func(ctx context.Context, params images.RecordParams) (*images.GeneratedImage, int, error)

	recordCalls int
	lastParams  images.RecordParams
}

func (m *mockRecorder) Record(ctx context.Context, params images.RecordParams) (*images.GeneratedImage, int, error) {
	m.recordCalls++
	m.lastParams = params

	if m.recordFunc != nil {
		return m.recordFunc(ctx, params)
	}

	return &images.GeneratedImage{
		ID:          "11111111-1111-1111-1111-111111111111",
		UserID:      params.UserID,
		ImageURL:    params.ImageURL,
		Prompt:      params.Prompt,
		Location:    params.Address,
		LocationLat: params.LocationLat,
		LocationLng: params.LocationLng,
		CreatedAt:   time.Now(),
	}, 1, nil
}

// implements Ledger for testing
type mockLedger struct {
	countFunc func(ctx context.Context, userID string, day time.Time) (int, error)

	countCalls int
}

func (m *mockLedger) CountForDay(ctx context.Context, userID string, day time.Time) (int, error) {
	m.countCalls++

	if m.countFunc != nil {
		return m.countFunc(ctx, userID, day)
	}

	return 0, nil
}

func validInput() Input {
	return Input{
		Image:         []byte{0xFF, 0xD8, 0xFF, 0xE0},
		ImageMIMEType: "image/jpeg",
		LocationJSON:  `{"lat": 40.7128, "lng": -74.0060, "address": "New York"}`,
	}
}

func TestDailyLimit(t *testing.T) {
	svc := NewService(&mockGenerator{}, &mockRecorder{}, &mockLedger{}, testDailyLimit)

	assert.Equal(t, testDailyLimit, svc.DailyLimit())
}

func TestGenerate_Success(t *testing.T) {
	gen := &mockGenerator{}
	rec := &mockRecorder{}
	ledger := &mockLedger{}

	svc := NewService(gen, rec, ledger, testDailyLimit)

	out, err := svc.Generate(context.Background(), "user-1", validInput())

	require.NoError(t, err)
	assert.True(t, out.Persisted)
	assert.False(t, out.Fallback)
	assert.True(t, strings.HasPrefix(out.ImageURL, "data:image/png;base64,"))
	assert.Equal(t, testDailyLimit-1, out.RemainingUsage)
	require.NotNil(t, out.Image)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", out.Image.ID)

	assert.Equal(t, 1, gen.generateCalls)
	assert.Equal(t, 1, rec.recordCalls)
	assert.Equal(t, "New York", rec.lastParams.Address)
	assert.InDelta(t, 40.7128, rec.lastParams.LocationLat, 1e-9)
}

func TestGenerate_ValidationShortCircuit(t *testing.T) {
	// a bad location must never trigger a quota read or a generation call
	gen := &mockGenerator{}
	rec := &mockRecorder{}
	ledger := &mockLedger{}

	svc := NewService(gen, rec, ledger, testDailyLimit)

	in := validInput()
	in.LocationJSON = "invalid-json"

	_, err := svc.Generate(context.Background(), "user-1", in)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	assert.Zero(t, ledger.countCalls)
	assert.Zero(t, gen.generateCalls)
	assert.Zero(t, gen.availableCalls)
	assert.Zero(t, rec.recordCalls)
}

func TestGenerate_MissingImageShortCircuit(t *testing.T) {
	gen := &mockGenerator{}
	rec := &mockRecorder{}
	ledger := &mockLedger{}

	svc := NewService(gen, rec, ledger, testDailyLimit)

	in := validInput()
	in.Image = nil

	_, err := svc.Generate(context.Background(), "user-1", in)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Zero(t, ledger.countCalls)
	assert.Zero(t, gen.generateCalls)
}

func TestGenerate_QuotaExceeded(t *testing.T) {
	// once the advisory count is at the limit, the generation service must
	// not be touched at all
	gen := &mockGenerator{}
	rec := &mockRecorder{}
	ledger := &mockLedger{
		countFunc: func(_ context.Context, _ string, _ time.Time) (int, error) {
			return testDailyLimit, nil
		},
	}

	svc := NewService(gen, rec, ledger, testDailyLimit)

	_, err := svc.Generate(context.Background(), "user-1", validInput())

	require.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Zero(t, gen.generateCalls)
	assert.Zero(t, gen.availableCalls)
	assert.Zero(t, rec.recordCalls)
}

func TestGenerate_AdvisoryCheckPassesAtLimitMinusOne(t *testing.T) {
	// the pre-generation read is advisory only: a count of limit-1 passes,
	// and two concurrent requests in that state may both complete. The
	// atomic upsert in the recorder is the authoritative enforcement point.
	gen := &mockGenerator{}
	rec := &mockRecorder{
		recordFunc: func(_ context.Context, params images.RecordParams) (*images.GeneratedImage, int, error) {
			return &images.GeneratedImage{ID: "22222222-2222-2222-2222-222222222222"}, testDailyLimit, nil
		},
	}
	ledger := &mockLedger{
		countFunc: func(_ context.Context, _ string, _ time.Time) (int, error) {
			return testDailyLimit - 1, nil
		},
	}

	svc := NewService(gen, rec, ledger, testDailyLimit)

	out, err := svc.Generate(context.Background(), "user-1", validInput())

	require.NoError(t, err)
	assert.Equal(t, 0, out.RemainingUsage)
	assert.Equal(t, 1, gen.generateCalls)
}

func TestGenerate_UpstreamUnavailable(t *testing.T) {
	gen := &mockGenerator{
		availableFunc: func(_ context.Context) bool { return false },
	}
	rec := &mockRecorder{}
	ledger := &mockLedger{}

	svc := NewService(gen, rec, ledger, testDailyLimit)

	_, err := svc.Generate(context.Background(), "user-1", validInput())

	require.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Zero(t, gen.generateCalls)
	assert.Zero(t, rec.recordCalls, "no quota consumed when the service is down")
}

func TestGenerate_FallbackOnGenerationFailure(t *testing.T) {
	// exhausted retries degrade to a placeholder; the request succeeds and
	// one quota unit is still consumed
	gen := &mockGenerator{
		generateFunc: func(_ context.Context, _ gemini.Request) (*gemini.Result, error) {
			return nil, fmt.Errorf("failed to generate image after 4 attempts: boom")
		},
	}
	rec := &mockRecorder{}
	ledger := &mockLedger{}

	svc := NewService(gen, rec, ledger, testDailyLimit)

	out, err := svc.Generate(context.Background(), "user-1", validInput())

	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Contains(t, out.ImageURL, "picsum.photos")
	assert.Contains(t, out.Prompt, "generation failed")
	assert.Contains(t, out.Prompt, "boom")

	assert.Equal(t, 1, rec.recordCalls, "fallback still consumes quota")
	assert.Equal(t, out.ImageURL, rec.lastParams.ImageURL)
}

func TestGenerate_PersistenceFailureStillSucceeds(t *testing.T) {
	// a failed transaction must not surface to the user once an image exists
	gen := &mockGenerator{}
	rec := &mockRecorder{
		recordFunc: func(_ context.Context, _ images.RecordParams) (*images.GeneratedImage, int, error) {
			return nil, 0, errors.New("connection refused")
		},
	}
	ledger := &mockLedger{
		countFunc: func(_ context.Context, _ string, _ time.Time) (int, error) {
			return 3, nil
		},
	}

	svc := NewService(gen, rec, ledger, testDailyLimit)

	out, err := svc.Generate(context.Background(), "user-1", validInput())

	require.NoError(t, err)
	assert.False(t, out.Persisted)
	assert.Nil(t, out.Image)
	assert.True(t, strings.HasPrefix(out.ImageURL, "data:"))
	assert.Equal(t, testDailyLimit-3-1, out.RemainingUsage)
}

func TestGenerate_LedgerErrorFailsRequest(t *testing.T) {
	gen := &mockGenerator{}
	rec := &mockRecorder{}
	ledger := &mockLedger{
		countFunc: func(_ context.Context, _ string, _ time.Time) (int, error) {
			return 0, errors.New("db down")
		},
	}

	svc := NewService(gen, rec, ledger, testDailyLimit)

	_, err := svc.Generate(context.Background(), "user-1", validInput())

	require.Error(t, err)
	assert.Zero(t, gen.generateCalls)
}

func TestGenerate_PromptMentionsLocation(t *testing.T) {
	var captured gemini.Request

	gen := &mockGenerator{
		generateFunc: func(_ context.Context, req gemini.Request) (*gemini.Result, error) {
			captured = req
			return &gemini.Result{ImageData: "eA==", MIMEType: "image/png", Prompt: req.Prompt}, nil
		},
	}

	svc := NewService(gen, &mockRecorder{}, &mockLedger{}, testDailyLimit)

	_, err := svc.Generate(context.Background(), "user-1", validInput())

	require.NoError(t, err)
	assert.Contains(t, captured.Prompt, "New York")
	assert.Equal(t, "New York", captured.Location)
	assert.Equal(t, "image/jpeg", captured.InputMIMEType)
	assert.NotEmpty(t, captured.InputImage)
}
