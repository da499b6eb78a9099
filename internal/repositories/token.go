package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// TokenRepository stores one OAuth token per external service.
//
// Implements services.TokenPersister so refreshed tokens written by the
// oauth2 token source land back in the store.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a TokenRepository with the given database connection.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// SaveToken upserts the token for a service.
func (r *TokenRepository) SaveToken(service string, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("refusing to save empty token for %s", service)
	}

	query := `
		INSERT INTO tokens (service, access_token, refresh_token, token_type, expiry, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(service) DO UPDATE SET
			access_token  = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type    = excluded.token_type,
			expiry        = excluded.expiry,
			updated_at    = excluded.updated_at
	`

	tokenType := token.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	if _, err := r.db.Exec(query,
		service, token.AccessToken, token.RefreshToken, tokenType, token.Expiry, time.Now(),
	); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// GetToken retrieves the stored token for a service.
// Returns (nil, nil) when no token has been stored.
func (r *TokenRepository) GetToken(service string) (*oauth2.Token, error) {
	query := `
		SELECT access_token, refresh_token, token_type, expiry
		FROM tokens WHERE service = ?
	`

	var token oauth2.Token
	var expiry sql.NullTime

	err := r.db.QueryRow(query, service).Scan(
		&token.AccessToken, &token.RefreshToken, &token.TokenType, &expiry,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	if expiry.Valid {
		token.Expiry = expiry.Time
	}

	return &token, nil
}

// DeleteToken removes the stored token for a service.
func (r *TokenRepository) DeleteToken(service string) error {
	if _, err := r.db.Exec(`DELETE FROM tokens WHERE service = ?`, service); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
