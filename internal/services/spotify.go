// Spotify API implementation of [Catalog] and [Publisher]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jii-iin/weathermix/internal/models"
	"github.com/jii-iin/weathermix/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// SpotifyTokenKey is the token store row for the delegated user session.
	SpotifyTokenKey = "spotify"

	// Fixed description for published playlists.
	playlistDescription = "날씨 기반 자동 추천 플레이리스트"
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	ExternalURLs externalURLs    `json:"external_urls"`
	URI          string          `json:"uri"`
}

type searchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyAudioFeatures represents the audio-features object for one track.
// Entries in a batch response may be null where Spotify has no analysis.
type SpotifyAudioFeatures struct {
	ID    string  `json:"id"`
	Tempo float64 `json:"tempo"`
}

type audioFeaturesResponse struct {
	AudioFeatures []*SpotifyAudioFeatures `json:"audio_features"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyPlaylist represents a Spotify playlist.
type SpotifyPlaylist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Public       bool         `json:"public"`
	ExternalURLs externalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

// SpotifyService implements [Catalog] and [Publisher].
//
// Catalog operations use an application token obtained once per process via
// the client-credentials grant and never refreshed: if it expires mid-session
// searches silently return empty results. Publisher operations use a
// delegated user token managed by [oauth2] with automatic refresh.
type SpotifyService struct {
	config     *oauth2.Config
	appCreds   *clientcredentials.Config
	appToken   string
	httpClient *http.Client
	userClient *http.Client

	baseURL  string
	tokenURL string
}

var (
	_ Catalog   = (*SpotifyService)(nil)
	_ Publisher = (*SpotifyService)(nil)
)

// NewSpotifyService creates a new Spotify service with the given credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"playlist-modify-private",
			"playlist-modify-public",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config: config,
		appCreds: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotifyTokenURL,
		},
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
		tokenURL:   spotifyTokenURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// FetchAppToken obtains the client-credentials token used for catalog search.
//
// Called once at process start. Fail-soft: on failure the token stays empty
// and every subsequent search returns an empty list.
func (s *SpotifyService) FetchAppToken(ctx context.Context) bool {
	s.appCreds.TokenURL = s.tokenURL

	token, err := s.appCreds.Token(ctx)
	if err != nil {
		return false
	}

	s.appToken = token.AccessToken
	return s.appToken != ""
}

// appRequest performs a GET against the Spotify API with the application token.
func (s *SpotifyService) appRequest(ctx context.Context, endpoint string, result any) error {
	if s.appToken == "" {
		return fmt.Errorf("%w: no application token", shared.ErrNotAuthenticated)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.appToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Search returns up to limit tracks for the free-text query.
//
// Fail-soft: any failure (missing token, network error, malformed response)
// returns an empty list.
func (s *SpotifyService) Search(ctx context.Context, query string, limit int) []models.Track {
	if limit <= 0 {
		return nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	var body searchResponse
	if err := s.appRequest(ctx, "/search?"+params.Encode(), &body); err != nil {
		return nil
	}

	tracks := make([]models.Track, 0, len(body.Tracks.Items))
	for _, item := range body.Tracks.Items {
		tracks = append(tracks, mapTrack(item))
	}

	return tracks
}

// AudioFeatures batch-fetches audio features for the given track IDs in a
// single call. Entries may be nil where the catalog has no features.
//
// Fail-soft: returns an empty list on any failure.
func (s *SpotifyService) AudioFeatures(ctx context.Context, ids []string) []*models.AudioFeatures {
	if len(ids) == 0 {
		return nil
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))

	var body audioFeaturesResponse
	if err := s.appRequest(ctx, "/audio-features?"+params.Encode(), &body); err != nil {
		return nil
	}

	features := make([]*models.AudioFeatures, len(body.AudioFeatures))
	for i, f := range body.AudioFeatures {
		if f == nil {
			continue
		}
		features[i] = &models.AudioFeatures{TrackID: f.ID, Tempo: f.Tempo}
	}

	return features
}

func mapTrack(t SpotifyTrack) models.Track {
	track := models.Track{
		ID:          t.ID,
		Name:        t.Name,
		ExternalURL: t.ExternalURLs.Spotify,
		URI:         t.URI,
	}

	for _, artist := range t.Artists {
		track.Artists = append(track.Artists, artist.Name)
	}

	if len(t.Album.Images) > 0 {
		track.AlbumArtURL = t.Album.Images[0].URL
	}

	return track
}

// GetAuthURL returns the OAuth2 authorization URL for user consent.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig returns the delegated-authorization config for the callback server.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// persistingSource wraps an [oauth2.TokenSource] and writes refreshed tokens
// to the store so the consent flow is only needed once. Store failures are
// ignored: a broken cache should not fail a run.
type persistingSource struct {
	base  oauth2.TokenSource
	store TokenPersister
	mu    sync.Mutex
	last  string
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	token, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.store != nil && token.AccessToken != p.last {
		p.last = token.AccessToken
		_ = p.store.SaveToken(SpotifyTokenKey, token)
	}

	return token, nil
}

// OAuthenticate installs a delegated user token. Refresh is handled by the
// [oauth2] token source; refreshed tokens are written back through store
// (which may be nil).
func (s *SpotifyService) OAuthenticate(ctx context.Context, token *oauth2.Token, store TokenPersister) {
	src := &persistingSource{
		base:  s.config.TokenSource(ctx, token),
		store: store,
		last:  token.AccessToken,
	}
	s.userClient = oauth2.NewClient(ctx, src)
}

// Authorized reports whether a delegated user token has been installed.
func (s *SpotifyService) Authorized() bool {
	return s.userClient != nil
}

// userRequest performs an authenticated request on behalf of the end user.
// Unlike appRequest this path is fail-loud.
func (s *SpotifyService) userRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if s.userClient == nil {
		return fmt.Errorf("%w: run 'weathermix auth login' first", shared.ErrNotAuthenticated)
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.userClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// UserProfile retrieves the authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.userRequest(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreatePlaylist creates a playlist on the user's account.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (*SpotifyPlaylist, error) {
	body := map[string]any{
		"name":        name,
		"public":      public,
		"description": description,
	}

	var playlist SpotifyPlaylist
	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))
	if err := s.userRequest(ctx, http.MethodPost, endpoint, body, &playlist); err != nil {
		return nil, err
	}

	return &playlist, nil
}

// AddTracks appends the URIs to the playlist in order, in one batch call.
func (s *SpotifyService) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	body := map[string]any{"uris": uris}
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	return s.userRequest(ctx, http.MethodPost, endpoint, body, nil)
}

// Publish creates a private "Weather Mix" playlist named with the city and
// the current local time to minute precision, then appends the request's
// URIs in order. Returns the playlist with its shareable link.
//
// Fail-loud: every failure propagates to the caller.
func (s *SpotifyService) Publish(ctx context.Context, req models.PlaylistRequest) (*models.Playlist, error) {
	user, err := s.UserProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	name := fmt.Sprintf("Weather Mix - %s (%s)", req.City, time.Now().Format("01/02 15:04"))

	created, err := s.CreatePlaylist(ctx, user.ID, name, playlistDescription, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	if err := s.AddTracks(ctx, created.ID, req.TrackURIs); err != nil {
		return nil, fmt.Errorf("failed to add tracks: %w", err)
	}

	return &models.Playlist{
		ID:          created.ID,
		Name:        created.Name,
		Description: created.Description,
		Public:      created.Public,
		WebURL:      created.ExternalURLs.Spotify,
	}, nil
}
