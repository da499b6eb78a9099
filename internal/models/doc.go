// Package models defines the data model shared across the weathermix pipeline.
//
// All types are plain value objects produced fresh per run:
//   - [WeatherReading] : current conditions for a city, immutable once fetched
//   - [Track] : a catalog search result, lifetime of one rendering cycle
//   - [AudioFeatures] : per-track numeric features, discarded after filtering
//   - [PlaylistRequest] / [Playlist] : the publish input and its outcome
//
// Nothing here is persisted; the only durable state in the system is the
// OAuth token cache (internal/repositories).
package models
