package usage

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles daily usage counter database operations
type Repository struct {
	db *pgxpool.Pool
}

// DailyUsage is the per-user, per-calendar-day generation counter
type DailyUsage struct {
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
