package botdefense

import (
	"crypto/rand"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// returns a uniform random int in [0, n)
func cryptoRandInt(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0
	}

	return v.Int64()
}

// drips a plain-text response one chunk at a time to waste the client's time
func Tarpit(c *gin.Context, duration, chunkDelay time.Duration) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		return
	}

	deadline := time.Now().Add(duration)
	chunk := []byte("<html><body>loading")

	for time.Now().Before(deadline) {
		if _, err := c.Writer.Write(chunk); err != nil {
			return
		}

		flusher.Flush()
		chunk = []byte(".")

		select {
		case <-c.Request.Context().Done():
			return
		case <-time.After(chunkDelay):
		}
	}
}

// same slow drip, but shaped like a JSON response so API scrapers keep waiting
func TarpitJSON(c *gin.Context, duration, chunkDelay time.Duration) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "application/json")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		return
	}

	deadline := time.Now().Add(duration)
	chunk := []byte(`{"status":"success","data":[`)

	for time.Now().Before(deadline) {
		if _, err := c.Writer.Write(chunk); err != nil {
			return
		}

		flusher.Flush()
		chunk = []byte(" ")

		select {
		case <-c.Request.Context().Done():
			return
		case <-time.After(chunkDelay):
		}
	}
}
