// package services defines interfaces for the external HTTP APIs the
// pipeline is glued from: weather lookup, catalog search, playlist publishing.
package services

import (
	"context"

	"github.com/jii-iin/weathermix/internal/models"
	"golang.org/x/oauth2"
)

// WeatherProvider looks up current conditions for a city.
type WeatherProvider interface {
	// Current returns the reading and an HTTP-like status code.
	// A nil reading means the lookup failed (network, parse, or non-200
	// status); no error is propagated. Callers branch on status != 200.
	Current(ctx context.Context, city string) (*models.WeatherReading, int)
}

// Catalog searches tracks and fetches audio features with an
// application-level (non-user) token.
//
// Both operations are fail-soft: any failure yields an empty result, never an
// error.
type Catalog interface {
	// Search returns up to limit tracks matching the free-text query.
	Search(ctx context.Context, query string, limit int) []models.Track

	// AudioFeatures batch-fetches features for the given track IDs.
	// Entries may be nil where the catalog has no features for a track.
	AudioFeatures(ctx context.Context, ids []string) []*models.AudioFeatures
}

// Publisher materializes a track list as a playlist on the end user's
// account via delegated authorization. Unlike Catalog, failures propagate.
type Publisher interface {
	Publish(ctx context.Context, req models.PlaylistRequest) (*models.Playlist, error)
}

// TokenPersister persists delegated-auth tokens between runs so the consent
// flow only happens once. Implemented by repositories.TokenRepository.
type TokenPersister interface {
	SaveToken(service string, token *oauth2.Token) error
}
