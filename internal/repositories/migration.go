package repositories

import (
	"database/sql"
	"fmt"
)

const tokenSchema = `
CREATE TABLE IF NOT EXISTS tokens (
	service       TEXT PRIMARY KEY,
	access_token  TEXT NOT NULL,
	refresh_token TEXT NOT NULL DEFAULT '',
	token_type    TEXT NOT NULL DEFAULT 'Bearer',
	expiry        TIMESTAMP,
	updated_at    TIMESTAMP NOT NULL
);
`

// Migrate creates the token store schema if it does not exist.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(tokenSchema); err != nil {
		return fmt.Errorf("failed to create tokens table: %w", err)
	}
	return nil
}
