package images

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/iamhere/server/iamhere/usage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new image repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Record persists one generation result and its quota increment as a single
// transaction: the image insert and the daily_usage upsert commit together or
// not at all. Returns the new row and the post-increment count for the day.
func (r *Repository) Record(ctx context.Context, params RecordParams) (*GeneratedImage, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck

	var img GeneratedImage

	err = tx.QueryRow(
		ctx,
		queryInsert,
		params.UserID,
		params.ImageURL,
		params.Prompt,
		params.Address,
		params.LocationLat,
		params.LocationLng,
	).Scan(
		&img.ID,
		&img.UserID,
		&img.ImageURL,
		&img.Prompt,
		&img.Location,
		&img.LocationLat,
		&img.LocationLng,
		&img.CreatedAt,
	)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to insert generated image: %w", err)
	}

	count, err := usage.IncrementTx(ctx, tx, params.UserID, time.Now())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to increment daily usage: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &img, count, nil
}

// lists all images owned by the user, newest first
func (r *Repository) List(ctx context.Context, userID string) ([]GeneratedImage, error) {
	rows, err := r.db.Query(ctx, queryListForUser, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	imgs := []GeneratedImage{}

	for rows.Next() {
		var img GeneratedImage

		err := rows.Scan(
			&img.ID,
			&img.UserID,
			&img.ImageURL,
			&img.Prompt,
			&img.Location,
			&img.LocationLat,
			&img.LocationLng,
			&img.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		imgs = append(imgs, img)
	}

	return imgs, rows.Err()
}

// gets a single image by ID, scoped to the owner
func (r *Repository) Get(ctx context.Context, imageID, userID string) (*GeneratedImage, error) {
	var img GeneratedImage

	err := r.db.QueryRow(ctx, queryGet, imageID, userID).Scan(
		&img.ID,
		&img.UserID,
		&img.ImageURL,
		&img.Prompt,
		&img.Location,
		&img.LocationLat,
		&img.LocationLng,
		&img.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &img, nil
}

// deletes a single image, scoped to the owner
func (r *Repository) Delete(ctx context.Context, imageID, userID string) error {
	tag, err := r.db.Exec(ctx, queryDelete, imageID, userID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("image not found")
	}

	return nil
}

// counts all images owned by the user
func (r *Repository) CountForUser(ctx context.Context, userID string) (int, error) {
	var count int

	if err := r.db.QueryRow(ctx, queryCountForUser, userID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
