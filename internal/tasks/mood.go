package tasks

import (
	"fmt"
	"strings"
)

// defaultMood is the keyword for conditions outside the mapping table.
const defaultMood = "chill mood"

// tempoBoost is appended to the mood keyword in Tempo mode to bias the
// candidate pool toward energetic tracks before filtering by BPM.
const tempoBoost = "upbeat dance"

// moodTable maps an OpenWeatherMap primary condition category to a
// search-seed keyword.
var moodTable = map[string]string{
	"clear":        "happy pop bright",
	"clouds":       "indie chill",
	"rain":         "lofi rainy chill",
	"snow":         "cozy acoustic",
	"thunderstorm": "dark edm",
}

// MoodKeyword derives the search-seed keyword from a weather condition.
// Pure and total: unknown or empty conditions map to the default keyword.
func MoodKeyword(condition string) string {
	if kw, ok := moodTable[strings.ToLower(condition)]; ok {
		return kw
	}
	return defaultMood
}

// Mode selects one of the three generation behaviors. All modes share the
// same weather-fetch and mood-mapping preamble and differ only in how the
// search query is built and whether results are tempo-filtered.
type Mode int

const (
	ModeBasic Mode = iota
	ModeTempo
	ModeCustom
)

func (m Mode) String() string {
	switch m {
	case ModeBasic:
		return "basic"
	case ModeTempo:
		return "tempo"
	case ModeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "":
		return ModeBasic, nil
	case "tempo":
		return ModeTempo, nil
	case "custom":
		return ModeCustom, nil
	default:
		return ModeBasic, fmt.Errorf("unknown mode %q (want basic, tempo, or custom)", s)
	}
}

// query builds the catalog search query for the mode from the mood keyword
// and the user's extra keywords (Custom mode only).
func (m Mode) query(mood, keywords string) string {
	switch m {
	case ModeTempo:
		return mood + " " + tempoBoost
	case ModeCustom:
		if kw := strings.TrimSpace(keywords); kw != "" {
			return mood + " " + kw
		}
		return mood
	default:
		return mood
	}
}
