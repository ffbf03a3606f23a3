package usage

const (
	queryCountForDay = `
		SELECT count
		FROM daily_usage
		WHERE user_id = $1 AND date = $2
	`

	// the authoritative quota enforcement point: a single atomic upsert,
	// race-safe under concurrent requests thanks to the unique (user_id, date)
	// constraint
	queryIncrementOrCreate = `
		INSERT INTO daily_usage (user_id, date, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, date)
		DO UPDATE SET
			count = daily_usage.count + 1,
			updated_at = NOW()
		RETURNING count
	`
)
