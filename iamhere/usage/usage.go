package usage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new usage repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Day truncates a timestamp to UTC midnight, the granularity of the ledger.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// returns the recorded count for (user, day), zero when no record exists.
// This read is advisory; enforcement happens in the atomic increment.
func (r *Repository) CountForDay(ctx context.Context, userID string, day time.Time) (int, error) {
	var count int

	err := r.db.QueryRow(ctx, queryCountForDay, userID, Day(day)).Scan(&count)

	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	return count, nil
}

// atomically increments the counter for (user, day), creating it with count
// one when absent. Returns the post-increment count.
func (r *Repository) Increment(ctx context.Context, userID string, day time.Time) (int, error) {
	var count int

	err := r.db.QueryRow(ctx, queryIncrementOrCreate, userID, Day(day)).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// IncrementTx runs the same atomic upsert inside a caller-owned transaction,
// so an image insert and its usage increment commit as one unit.
func IncrementTx(ctx context.Context, tx pgx.Tx, userID string, day time.Time) (int, error) {
	var count int

	err := tx.QueryRow(ctx, queryIncrementOrCreate, userID, Day(day)).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
