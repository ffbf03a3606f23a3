package images

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles generated image database operations
type Repository struct {
	db *pgxpool.Pool
}

// GeneratedImage is one generation result. Rows are immutable once created.
type GeneratedImage struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	ImageURL    string    `json:"image_url"`
	Prompt      string    `json:"prompt"`
	Location    string    `json:"location"`
	LocationLat float64   `json:"location_lat"`
	LocationLng float64   `json:"location_lng"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordParams carries everything needed to persist one generation
type RecordParams struct {
	UserID      string
	ImageURL    string
	Prompt      string
	Address     string
	LocationLat float64
	LocationLng float64
}
