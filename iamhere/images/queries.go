package images

const (
	queryInsert = `
		INSERT INTO generated_images (user_id, image_url, prompt, location, location_lat, location_lng)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, image_url, prompt, location, location_lat, location_lng, created_at
	`

	queryListForUser = `
		SELECT id, user_id, image_url, prompt, location, location_lat, location_lng, created_at
		FROM generated_images
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	queryGet = `
		SELECT id, user_id, image_url, prompt, location, location_lat, location_lng, created_at
		FROM generated_images
		WHERE id = $1 AND user_id = $2
	`

	queryDelete = `
		DELETE FROM generated_images
		WHERE id = $1 AND user_id = $2
	`

	queryCountForUser = `
		SELECT COUNT(*)
		FROM generated_images
		WHERE user_id = $1
	`
)
