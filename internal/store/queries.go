package store

// Secret queries
const (
	queryGetSecret = `
		SELECT scope, key, value, created_at, updated_at
		FROM secrets WHERE scope = ? AND key = ?`

	queryUpsertSecret = `
		INSERT INTO secrets (scope, key, value, updated_at)
		VALUES (?, ?, ?, now())
		ON CONFLICT (scope, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = now()`

	queryDeleteSecret = `DELETE FROM secrets WHERE scope = ? AND key = ?`
)
