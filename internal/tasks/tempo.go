package tasks

import (
	"github.com/jii-iin/weathermix/internal/models"
)

// oversampleFactor is how many times the requested limit is fetched before
// tempo filtering. The filter discards candidates, so the pool is padded to
// keep result counts robust at the cost of a larger search page.
const oversampleFactor = 3

// FilterByTempo keeps candidates whose tempo meets the threshold, preserving
// the pool's original relevance order, and truncates to limit.
//
// The features slice is matched to candidates by track ID, not position;
// candidates with a missing or nil feature entry are excluded from the
// filtered set. If filtering empties a non-empty pool, the first limit
// unfiltered candidates are returned instead, so over-filtering never
// produces zero results when the catalog had matches.
func FilterByTempo(pool []models.Track, features []*models.AudioFeatures, minBPM float64, limit int) []models.Track {
	byID := make(map[string]*models.AudioFeatures, len(features))
	for _, f := range features {
		if f == nil {
			continue
		}
		byID[f.TrackID] = f
	}

	var kept []models.Track
	for _, track := range pool {
		f, ok := byID[track.ID]
		if ok && f.Tempo >= minBPM {
			kept = append(kept, track)
		}
	}

	if len(kept) == 0 {
		kept = pool
	}

	if len(kept) > limit {
		kept = kept[:limit]
	}

	return kept
}

func trackIDs(tracks []models.Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}
