package formatter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jii-iin/weathermix/internal/models"
	"github.com/jii-iin/weathermix/internal/tasks"
	"golang.org/x/time/rate"
)

// ArtOpts configures concurrent album-art downloads.
type ArtOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 8)
	RateLimit  float64 // Downloads per second (default: 5)
}

// DefaultArtOpts returns the default download settings.
func DefaultArtOpts() ArtOpts {
	return ArtOpts{NumWorkers: 4, RateLimit: 5.0}
}

type artJob struct {
	track models.Track
}

type artResult struct {
	trackID string
	path    string
	err     error
}

// DownloadArt fetches album art for every track in the mix into dir, throttled
// so a 30-track mix doesn't hammer the image CDN.
//
// Returns a map of track ID to written file path. Individual download
// failures are skipped; only directory creation fails the whole call.
func DownloadArt(result *tasks.MixResult, dir string, opts ArtOpts) (map[string]string, error) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create art directory: %w", err)
	}

	ctx := context.Background()
	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan artJob, len(result.Tracks))
	results := make(chan artResult, len(result.Tracks))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					results <- artResult{trackID: job.track.ID, err: err}
					continue
				}

				data, err := DownloadImage(job.track.AlbumArtURL)
				if err != nil {
					results <- artResult{trackID: job.track.ID, err: err}
					continue
				}

				path := filepath.Join(dir, safeFilename(job.track.ID))
				if err := os.WriteFile(path, data, 0644); err != nil {
					results <- artResult{trackID: job.track.ID, err: err}
					continue
				}

				results <- artResult{trackID: job.track.ID, path: path}
			}
		}()
	}

	queued := 0
	for _, track := range result.Tracks {
		if track.AlbumArtURL == "" {
			continue
		}
		jobs <- artJob{track: track}
		queued++
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	downloaded := make(map[string]string, queued)
	for res := range results {
		if res.err != nil {
			continue
		}
		downloaded[res.trackID] = res.path
	}

	return downloaded, nil
}
