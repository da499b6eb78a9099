// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jii-iin/weathermix/internal/models"
)

// MockWeather is a test double for [services.WeatherProvider]
type MockWeather struct {
	Reading *models.WeatherReading
	Status  int
	Cities  []string
}

func (m *MockWeather) Current(ctx context.Context, city string) (*models.WeatherReading, int) {
	m.Cities = append(m.Cities, city)
	return m.Reading, m.Status
}

// MockCatalog is a test double for [services.Catalog]. Search returns a prefix
// of Tracks capped at the requested limit, so limit handling is observable.
type MockCatalog struct {
	Tracks     []models.Track
	Features   []*models.AudioFeatures
	Queries    []string
	Limits     []int
	FeatureIDs [][]string
}

func (m *MockCatalog) Search(ctx context.Context, query string, limit int) []models.Track {
	m.Queries = append(m.Queries, query)
	m.Limits = append(m.Limits, limit)
	if limit < len(m.Tracks) {
		return m.Tracks[:limit]
	}
	return m.Tracks
}

func (m *MockCatalog) AudioFeatures(ctx context.Context, ids []string) []*models.AudioFeatures {
	m.FeatureIDs = append(m.FeatureIDs, ids)
	return m.Features
}

// MockPublisher is a test double for [services.Publisher]
type MockPublisher struct {
	Playlist *models.Playlist
	Err      error
	Requests []models.PlaylistRequest
}

func (m *MockPublisher) Publish(ctx context.Context, req models.PlaylistRequest) (*models.Playlist, error) {
	m.Requests = append(m.Requests, req)
	return m.Playlist, m.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}
