package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/jii-iin/weathermix/internal/models"
	"github.com/jii-iin/weathermix/internal/shared"
	"golang.org/x/oauth2"
)

func publishRequest(city string, uris ...string) models.PlaylistRequest {
	return models.PlaylistRequest{City: city, TrackURIs: uris}
}

func testCredentials() map[string]string {
	return map[string]string{
		"client_id":     "test-client-id",
		"client_secret": "test-client-secret",
		"redirect_uri":  "http://localhost:3000/callback",
	}
}

func newTestService(t *testing.T, handler http.HandlerFunc) *SpotifyService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewSpotifyService(testCredentials())
	if err != nil {
		t.Fatalf("NewSpotifyService() error: %v", err)
	}
	svc.baseURL = server.URL
	svc.appToken = "test-app-token"
	return svc
}

func TestNewSpotifyService(t *testing.T) {
	tests := []struct {
		name        string
		credentials map[string]string
		wantErr     error
	}{
		{name: "valid credentials", credentials: testCredentials()},
		{
			name:        "missing client_id",
			credentials: map[string]string{"client_secret": "secret"},
			wantErr:     shared.ErrMissingCredentials,
		},
		{
			name:        "missing client_secret",
			credentials: map[string]string{"client_id": "id"},
			wantErr:     shared.ErrMissingCredentials,
		},
		{
			name:        "redirect_uri defaults when absent",
			credentials: map[string]string{"client_id": "id", "client_secret": "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewSpotifyService(tt.credentials)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewSpotifyService() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSpotifyService() unexpected error: %v", err)
			}
			if svc.config.RedirectURL == "" {
				t.Error("expected a redirect URL")
			}
		})
	}
}

func TestSpotifyService_FetchAppToken(t *testing.T) {
	ctx := context.Background()

	t.Run("stores token on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("token request method = %s", r.Method)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token": "app-token", "token_type": "Bearer", "expires_in": 3600}`))
		}))
		defer server.Close()

		svc, _ := NewSpotifyService(testCredentials())
		svc.tokenURL = server.URL

		if !svc.FetchAppToken(ctx) {
			t.Fatal("FetchAppToken() = false, want true")
		}
		if svc.appToken != "app-token" {
			t.Errorf("appToken = %q", svc.appToken)
		}
	})

	t.Run("fails soft on error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "invalid_client"}`))
		}))
		defer server.Close()

		svc, _ := NewSpotifyService(testCredentials())
		svc.tokenURL = server.URL

		if svc.FetchAppToken(ctx) {
			t.Error("FetchAppToken() = true, want false")
		}
		if svc.appToken != "" {
			t.Errorf("appToken = %q, want empty", svc.appToken)
		}
	})
}

func TestSpotifyService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("maps response tracks", func(t *testing.T) {
		var gotQuery, gotLimit, gotAuth string
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/search") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			gotQuery = r.URL.Query().Get("q")
			gotLimit = r.URL.Query().Get("limit")
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{
				"tracks": {"items": [
					{
						"id": "t1",
						"name": "Rainy Song",
						"artists": [{"id": "a1", "name": "Artist One"}, {"id": "a2", "name": "Artist Two"}],
						"album": {"id": "al1", "images": [{"url": "https://img/large.jpg"}, {"url": "https://img/small.jpg"}]},
						"external_urls": {"spotify": "https://open.spotify.com/track/t1"},
						"uri": "spotify:track:t1"
					}
				]}
			}`))
		})

		tracks := svc.Search(ctx, "lofi rainy chill", 15)
		if len(tracks) != 1 {
			t.Fatalf("Search() returned %d tracks", len(tracks))
		}

		if gotQuery != "lofi rainy chill" || gotLimit != "15" {
			t.Errorf("request q=%q limit=%q", gotQuery, gotLimit)
		}
		if gotAuth != "Bearer test-app-token" {
			t.Errorf("Authorization = %q", gotAuth)
		}

		track := tracks[0]
		if track.ID != "t1" || track.Name != "Rainy Song" {
			t.Errorf("track = %+v", track)
		}
		if track.ArtistLine() != "Artist One, Artist Two" {
			t.Errorf("ArtistLine() = %q", track.ArtistLine())
		}
		if track.AlbumArtURL != "https://img/large.jpg" {
			t.Errorf("AlbumArtURL = %q, want first image", track.AlbumArtURL)
		}
		if track.URI != "spotify:track:t1" {
			t.Errorf("URI = %q", track.URI)
		}
	})

	t.Run("empty without app token", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not reach the API without a token")
		})
		svc.appToken = ""

		if tracks := svc.Search(ctx, "indie chill", 10); len(tracks) != 0 {
			t.Errorf("Search() = %v, want empty", tracks)
		}
	})

	t.Run("empty on server error", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		if tracks := svc.Search(ctx, "indie chill", 10); len(tracks) != 0 {
			t.Errorf("Search() = %v, want empty", tracks)
		}
	})

	t.Run("non-positive limit short-circuits", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not be made for limit 0")
		})

		if tracks := svc.Search(ctx, "indie chill", 0); tracks != nil {
			t.Errorf("Search() = %v, want nil", tracks)
		}
	})
}

func TestSpotifyService_AudioFeatures(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves null entries positionally", func(t *testing.T) {
		var gotIDs string
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			gotIDs = r.URL.Query().Get("ids")
			w.Write([]byte(`{"audio_features": [
				{"id": "t1", "tempo": 128.0},
				null,
				{"id": "t3", "tempo": 92.5}
			]}`))
		})

		features := svc.AudioFeatures(ctx, []string{"t1", "t2", "t3"})
		if gotIDs != "t1,t2,t3" {
			t.Errorf("ids param = %q", gotIDs)
		}
		if len(features) != 3 {
			t.Fatalf("AudioFeatures() returned %d entries, want 3", len(features))
		}
		if features[0] == nil || features[0].Tempo != 128.0 {
			t.Errorf("features[0] = %+v", features[0])
		}
		if features[1] != nil {
			t.Errorf("features[1] = %+v, want nil", features[1])
		}
		if features[2] == nil || features[2].TrackID != "t3" {
			t.Errorf("features[2] = %+v", features[2])
		}
	})

	t.Run("empty input makes no request", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not be made for no IDs")
		})

		if features := svc.AudioFeatures(ctx, nil); features != nil {
			t.Errorf("AudioFeatures() = %v, want nil", features)
		}
	})

	t.Run("empty on server error", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		if features := svc.AudioFeatures(ctx, []string{"t1"}); features != nil {
			t.Errorf("AudioFeatures() = %v, want nil", features)
		}
	})
}

func TestSpotifyService_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a private playlist and adds tracks in order", func(t *testing.T) {
		var createBody map[string]any
		var addBody map[string]any
		var order []string

		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			order = append(order, r.Method+" "+r.URL.Path)
			switch {
			case r.URL.Path == "/me":
				w.Write([]byte(`{"id": "user1", "display_name": "Tester"}`))
			case r.URL.Path == "/users/user1/playlists":
				json.NewDecoder(r.Body).Decode(&createBody)
				w.Write([]byte(`{
					"id": "pl1",
					"name": "` + createBody["name"].(string) + `",
					"description": "desc",
					"public": false,
					"external_urls": {"spotify": "https://open.spotify.com/playlist/pl1"}
				}`))
			case r.URL.Path == "/playlists/pl1/tracks":
				json.NewDecoder(r.Body).Decode(&addBody)
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"snapshot_id": "snap1"}`))
			default:
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
		})
		svc.OAuthenticate(ctx, &oauth2.Token{AccessToken: "user-token"}, nil)

		playlist, err := svc.Publish(ctx, publishRequest("Seoul", "spotify:track:a", "spotify:track:b"))
		if err != nil {
			t.Fatalf("Publish() error: %v", err)
		}

		want := []string{"GET /me", "POST /users/user1/playlists", "POST /playlists/pl1/tracks"}
		if len(order) != len(want) {
			t.Fatalf("request order = %v", order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
			}
		}

		namePattern := regexp.MustCompile(`^Weather Mix - Seoul \(\d{2}/\d{2} \d{2}:\d{2}\)$`)
		if name, _ := createBody["name"].(string); !namePattern.MatchString(name) {
			t.Errorf("playlist name = %q", name)
		}
		if public, _ := createBody["public"].(bool); public {
			t.Error("playlist should be private")
		}
		if desc, _ := createBody["description"].(string); desc != "날씨 기반 자동 추천 플레이리스트" {
			t.Errorf("description = %q", desc)
		}

		uris, _ := addBody["uris"].([]any)
		if len(uris) != 2 || uris[0] != "spotify:track:a" || uris[1] != "spotify:track:b" {
			t.Errorf("uris = %v", uris)
		}

		if playlist.ID != "pl1" || playlist.WebURL != "https://open.spotify.com/playlist/pl1" {
			t.Errorf("playlist = %+v", playlist)
		}
		if playlist.Public {
			t.Error("returned playlist should be private")
		}
	})

	t.Run("fails loud without a user session", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not be made without authorization")
		})

		_, err := svc.Publish(ctx, publishRequest("Seoul", "spotify:track:a"))
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Fatalf("Publish() error = %v, want ErrNotAuthenticated", err)
		}
	})

	t.Run("propagates create failure", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/me" {
				w.Write([]byte(`{"id": "user1"}`))
				return
			}
			w.WriteHeader(http.StatusForbidden)
		})
		svc.OAuthenticate(ctx, &oauth2.Token{AccessToken: "user-token"}, nil)

		if _, err := svc.Publish(ctx, publishRequest("Seoul", "spotify:track:a")); err == nil {
			t.Fatal("Publish() expected error")
		}
	})
}
