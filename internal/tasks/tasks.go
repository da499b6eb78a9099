// package tasks orchestrates the weather → mood → catalog pipeline.
//
// The core abstraction is MixEngine, which owns the shared preamble (weather
// fetch, mood mapping) and dispatches on the selected mode. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/TUI
// layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/jii-iin/weathermix/internal/models"
	"github.com/jii-iin/weathermix/internal/services"
	"github.com/jii-iin/weathermix/internal/shared"
)

const (
	// Track limit bounds exposed to the user.
	MinTrackLimit     = 5
	MaxTrackLimit     = 30
	DefaultTrackLimit = 15

	// BPM threshold bounds for Tempo mode.
	MinBPM     = 60
	MaxBPM     = 180
	DefaultBPM = 110
)

// MixRequest describes one generation run.
type MixRequest struct {
	City     string  // non-empty city name
	Mode     Mode    // Basic, Tempo, or Custom
	Limit    int     // desired track count, clamped to [MinTrackLimit, MaxTrackLimit]
	MinBPM   float64 // Tempo mode: minimum tempo threshold
	Keywords string  // Custom mode: extra free-text keywords
	Publish  bool    // also publish the result as a real playlist
}

// MixResult is the outcome of a run: the weather that seeded it, the derived
// mood and query, and the recommended tracks.
type MixResult struct {
	ID       string                 `json:"id"`
	Weather  *models.WeatherReading `json:"weather"`
	Mood     string                 `json:"mood"`
	Query    string                 `json:"query"`
	Tracks   []models.Track         `json:"tracks"`
	Playlist *models.Playlist       `json:"playlist,omitempty"` // set when published
}

// TrackURIs collects the playable URIs of the result in render order.
func (r *MixResult) TrackURIs() []string {
	uris := make([]string, 0, len(r.Tracks))
	for _, t := range r.Tracks {
		uris = append(uris, t.URI)
	}
	return uris
}

// MixEngine runs the recommendation pipeline against the external services.
type MixEngine struct {
	weather   services.WeatherProvider
	catalog   services.Catalog
	publisher services.Publisher
}

// NewMixEngine creates a MixEngine with the provided services. The publisher
// may be nil; Publish then fails with [shared.ErrNotAuthenticated].
func NewMixEngine(weather services.WeatherProvider, catalog services.Catalog, publisher services.Publisher) *MixEngine {
	return &MixEngine{
		weather:   weather,
		catalog:   catalog,
		publisher: publisher,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *MixEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Generate runs weather lookup, mood mapping, and the mode-selected search
// path. It never publishes; see [MixEngine.Publish].
//
// Returns [shared.ErrCityNotFound] when the weather lookup fails or the city
// is unknown (no catalog calls are made in that case), and
// [shared.ErrNoResults] when the search yields nothing. The returned track
// list never exceeds the clamped limit.
func (e *MixEngine) Generate(ctx context.Context, req MixRequest, progress chan<- ProgressUpdate) (*MixResult, error) {
	if e.weather == nil || e.catalog == nil {
		return nil, fmt.Errorf("%w: engine not fully initialized", shared.ErrInvalidConfig)
	}

	limit := clampLimit(req.Limit)

	e.sendProgress(progress, fetchWeatherUpdate(req.City))

	reading, status := e.weather.Current(ctx, req.City)
	if reading == nil {
		return nil, fmt.Errorf("%w: %s (status %d)", shared.ErrCityNotFound, req.City, status)
	}

	mood := MoodKeyword(reading.Condition)
	e.sendProgress(progress, moodMappedUpdate(reading, mood))

	result := &MixResult{
		ID:      shared.GenerateID(),
		Weather: reading,
		Mood:    mood,
		Query:   req.Mode.query(mood, req.Keywords),
	}

	switch req.Mode {
	case ModeTempo:
		e.sendProgress(progress, searchUpdate(result.Query, limit*oversampleFactor))
		pool := e.catalog.Search(ctx, result.Query, limit*oversampleFactor)
		if len(pool) > 0 {
			e.sendProgress(progress, filterUpdate(len(pool), req.MinBPM))
			features := e.catalog.AudioFeatures(ctx, trackIDs(pool))
			result.Tracks = FilterByTempo(pool, features, req.MinBPM, limit)
		}
	default:
		e.sendProgress(progress, searchUpdate(result.Query, limit))
		result.Tracks = e.catalog.Search(ctx, result.Query, limit)
	}

	if len(result.Tracks) == 0 {
		return result, fmt.Errorf("%w: query %q", shared.ErrNoResults, result.Query)
	}

	if len(result.Tracks) > limit {
		result.Tracks = result.Tracks[:limit]
	}

	return result, nil
}

// Publish materializes a generated result as a real playlist on the user's
// account and records it on the result. Fail-loud.
func (e *MixEngine) Publish(ctx context.Context, result *MixResult, progress chan<- ProgressUpdate) (*models.Playlist, error) {
	if e.publisher == nil {
		return nil, fmt.Errorf("%w: no publisher configured", shared.ErrNotAuthenticated)
	}

	city := result.Weather.City
	e.sendProgress(progress, publishUpdate(city, len(result.Tracks)))

	playlist, err := e.publisher.Publish(ctx, models.PlaylistRequest{
		City:      city,
		TrackURIs: result.TrackURIs(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPlaylistCreate, err)
	}

	result.Playlist = playlist
	return playlist, nil
}

// Run executes Generate and, when requested, Publish in sequence. Used by the
// CLI; the TUI drives the two steps separately.
func (e *MixEngine) Run(ctx context.Context, req MixRequest, progress chan<- ProgressUpdate) (*MixResult, error) {
	result, err := e.Generate(ctx, req, progress)
	if err != nil {
		return result, err
	}

	if req.Publish {
		if _, err := e.Publish(ctx, result, progress); err != nil {
			return result, err
		}
	}

	return result, nil
}

func clampLimit(limit int) int {
	if limit < MinTrackLimit {
		return MinTrackLimit
	}
	if limit > MaxTrackLimit {
		return MaxTrackLimit
	}
	return limit
}
