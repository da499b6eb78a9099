package tasks

import (
	"fmt"

	"github.com/jii-iin/weathermix/internal/models"
)

// ProgressUpdate represents a progress event during a mix run.
//
// Used to send real-time updates to the CLI or TUI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Run phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Run phase enumeration. The phases mirror the per-run linear state machine:
// weather → mood → search (→ tempo filter) → publish.
type Phase int

const (
	FetchWeather Phase = iota
	MapMood
	SearchCatalog
	FilterTempo
	PublishPlaylist
)

func (p Phase) String() string {
	switch p {
	case FetchWeather:
		return "fetch_weather"
	case MapMood:
		return "map_mood"
	case SearchCatalog:
		return "search_catalog"
	case FilterTempo:
		return "filter_tempo"
	case PublishPlaylist:
		return "publish_playlist"
	default:
		return "unknown"
	}
}

func fetchWeatherUpdate(city string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchWeather,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching weather for %s...", city),
	}
}

func moodMappedUpdate(reading *models.WeatherReading, mood string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   MapMood,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("%s → %s", reading.Condition, mood),
		Data:    reading,
	}
}

func searchUpdate(query string, limit int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching catalog for %q (limit %d)...", query, limit),
	}
}

func filterUpdate(poolSize int, minBPM float64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FilterTempo,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Filtering %d candidates at ≥%.0f BPM...", poolSize, minBPM),
	}
}

func publishUpdate(city string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PublishPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Publishing %d tracks as a playlist for %s...", count, city),
	}
}
