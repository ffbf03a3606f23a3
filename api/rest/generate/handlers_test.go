package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/internal/generation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implements Service for testing
type mockService struct {
	generateFunc func(ctx context.Context, userID string, in generation.Input) (*generation.Output, error)

	calls     int
	lastInput generation.Input
}

func (m *mockService) Generate(ctx context.Context, userID string, in generation.Input) (*generation.Output, error) {
	m.calls++
	m.lastInput = in

	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID, in)
	}

	return &generation.Output{
		Image:          &images.GeneratedImage{ID: "33333333-3333-3333-3333-333333333333"},
		ImageURL:       "data:image/png;base64,QUJD",
		Prompt:         "a prompt",
		RemainingUsage: 99,
		Persisted:      true,
	}, nil
}

// fakes a validated session
func fakeAuth(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func newRouter(svc Service, middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := append(middleware, Handler(svc))
	router.POST("/generate", handlers...)

	return router
}

// builds a multipart body with optional image and location fields
func multipartBody(t *testing.T, imageData []byte, mimeType, location string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if imageData != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="selfie.jpg"`)
		header.Set("Content-Type", mimeType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)

		_, err = part.Write(imageData)
		require.NoError(t, err)
	}

	if location != "" {
		require.NoError(t, writer.WriteField("location", location))
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHandler_Success(t *testing.T) {
	svc := &mockService{}
	router := newRouter(svc, fakeAuth("user-1"))

	body, contentType := multipartBody(t, []byte{0xFF, 0xD8}, "image/jpeg",
		`{"lat": 40.7128, "lng": -74.0060, "address": "New York"}`)

	req := httptest.NewRequest("POST", "/generate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "33333333-3333-3333-3333-333333333333", resp.ID)
	assert.Equal(t, "data:image/png;base64,QUJD", resp.ImageURL)
	assert.Equal(t, 99, resp.RemainingUsage)
	require.NotNil(t, resp.GeneratedImage)

	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, "image/jpeg", svc.lastInput.ImageMIMEType)
}

func TestHandler_Unauthenticated(t *testing.T) {
	svc := &mockService{}
	router := newRouter(svc) // no auth middleware, no session

	body, contentType := multipartBody(t, []byte{0xFF}, "image/jpeg", `{}`)

	req := httptest.NewRequest("POST", "/generate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthorized")
	assert.Zero(t, svc.calls, "no downstream calls without a session")
}

func TestHandler_MissingImage(t *testing.T) {
	svc := &mockService{}
	router := newRouter(svc, fakeAuth("user-1"))

	body, contentType := multipartBody(t, nil, "", `{"lat": 1, "lng": 2, "address": "x"}`)

	req := httptest.NewRequest("POST", "/generate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestHandler_MissingLocation(t *testing.T) {
	svc := &mockService{}
	router := newRouter(svc, fakeAuth("user-1"))

	body, contentType := multipartBody(t, []byte{0xFF}, "image/jpeg", "")

	req := httptest.NewRequest("POST", "/generate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestHandler_ValidationError(t *testing.T) {
	svc := &mockService{
		generateFunc: func(_ context.Context, _ string, _ generation.Input) (*generation.Output, error) {
			return nil, &generation.ValidationError{Field: "location", Reason: "not valid JSON"}
		},
	}
	router := newRouter(svc, fakeAuth("user-1"))

	body, contentType := multipartBody(t, []byte{0xFF}, "image/jpeg", "invalid-json")

	req := httptest.NewRequest("POST", "/generate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestHandler_QuotaExceeded(t *testing.T) {
	svc := &mockService{
		generateFunc: func(_ context.Context, _ string, _ generation.Input) (*generation.Output, error) {
			return nil, generation.ErrQuotaExceeded
		},
	}
	router := newRouter(svc, fakeAuth("user-1"))

	body, contentType := multipartBody(t, []byte{0xFF}, "image/jpeg", `{"lat": 1, "lng": 2, "address": "x"}`)

	req := httptest.NewRequest("POST", "/generate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "quota_exceeded")
}

func TestHandler_UpstreamUnavailable(t *testing.T) {
	svc := &mockService{
		generateFunc: func(_ context.Context, _ string, _ generation.Input) (*generation.Output, error) {
			return nil, generation.ErrUpstreamUnavailable
		},
	}
	router := newRouter(svc, fakeAuth("user-1"))

	body, contentType := multipartBody(t, []byte{0xFF}, "image/jpeg", `{"lat": 1, "lng": 2, "address": "x"}`)

	req := httptest.NewRequest("POST", "/generate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "upstream_unavailable")
}

func TestHandler_FallbackResponse(t *testing.T) {
	// persistence failed and generation fell back: still a 200 with a
	// renderable placeholder
	svc := &mockService{
		generateFunc: func(_ context.Context, _ string, _ generation.Input) (*generation.Output, error) {
			return &generation.Output{
				ImageURL:       "https://picsum.photos/800/800?random=42",
				Prompt:         "base [generation failed, placeholder used: boom]",
				RemainingUsage: 98,
				Fallback:       true,
			}, nil
		},
	}
	router := newRouter(svc, fakeAuth("user-1"))

	body, contentType := multipartBody(t, []byte{0xFF}, "image/jpeg", `{"lat": 1, "lng": 2, "address": "x"}`)

	req := httptest.NewRequest("POST", "/generate", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.Empty(t, resp.ID, "not persisted")
	assert.Nil(t, resp.GeneratedImage)
	assert.Contains(t, resp.ImageURL, "picsum.photos")
}
