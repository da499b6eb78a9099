// Package server hosts the temporary localhost HTTP endpoint for the
// delegated-authorization consent flow.
//
// When the user runs authentication, a short-lived server starts on the
// configured host:port, receives the OAuth2 callback, validates the state
// parameter (CSRF protection), exchanges the authorization code for tokens,
// and delivers the result through a channel. The handler processes exactly
// one callback; replays get a 400.
package server
