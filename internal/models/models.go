package models

import "strings"

// WeatherReading represents current conditions for a city.
type WeatherReading struct {
	City        string  `json:"city"`
	Condition   string  `json:"condition"`   // primary category, e.g. "Clear", "Rain"
	Description string  `json:"description"` // localized description text
	TempC       float64 `json:"temperature_celsius"`
}

// Track represents a single catalog search result.
type Track struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	AlbumArtURL string   `json:"album_art_url"`
	ExternalURL string   `json:"external_url"`
	URI         string   `json:"uri"`
}

// ArtistLine joins the track's artists for display.
func (t Track) ArtistLine() string {
	return strings.Join(t.Artists, ", ")
}

// AudioFeatures holds the per-track numeric features used for tempo filtering.
// Other catalog features are ignored by this system.
type AudioFeatures struct {
	TrackID string  `json:"track_id"`
	Tempo   float64 `json:"tempo_bpm"`
}

// PlaylistRequest is the input to a publish action: a city for naming and an
// ordered list of playable URIs. Constructed once, consumed immediately,
// never retried automatically.
type PlaylistRequest struct {
	City      string   `json:"city"`
	TrackURIs []string `json:"track_uris"`
}

// Playlist represents a created playlist on the user's account.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
	WebURL      string `json:"web_url"` // shareable link
}
