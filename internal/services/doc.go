// Package services implements clients for the three external APIs the
// pipeline depends on.
//
// # Weather
//
// [OpenWeatherService] wraps the OpenWeatherMap current-conditions endpoint.
// It is fail-soft: a lookup never returns an error, only a nil reading plus a
// status code the caller branches on.
//
// # Catalog
//
// [SpotifyService] implements [Catalog] with an application token from the
// client-credentials grant, fetched once per process by
// [SpotifyService.FetchAppToken] and never refreshed. An expired app token
// makes searches return empty lists for the rest of the session; this
// limitation is deliberate and documented rather than papered over with a
// refresh loop.
//
// # Publisher
//
// The same [SpotifyService] implements [Publisher] with a delegated user
// token (scopes playlist-modify-private, playlist-modify-public). The
// [oauth2] token source refreshes expired tokens transparently, and refreshed
// tokens are written back through a [TokenPersister] so consent is one-time.
// Publisher calls are fail-loud: errors propagate to the presentation layer.
//
// # Error Handling
//
// Fail-loud paths wrap typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : no delegated token installed
//   - [shared.ErrAPIRequest] : HTTP request returned a non-2xx status
//   - [shared.ErrMissingCredentials] : client id/secret not configured
package services
