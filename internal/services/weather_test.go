package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
)

func newWeatherService(t *testing.T, handler http.HandlerFunc) *OpenWeatherService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := resty.New()
	client.SetBaseURL(server.URL)
	return NewOpenWeatherService("test-key", client)
}

func TestOpenWeatherService_Current(t *testing.T) {
	ctx := context.Background()

	t.Run("successful lookup", func(t *testing.T) {
		var gotQuery map[string]string
		svc := newWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"q":     r.URL.Query().Get("q"),
				"appid": r.URL.Query().Get("appid"),
				"units": r.URL.Query().Get("units"),
				"lang":  r.URL.Query().Get("lang"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"cod": 200,
				"weather": [{"main": "Rain", "description": "약한 비"}],
				"main": {"temp": 18.4}
			}`))
		})

		reading, status := svc.Current(ctx, "Seoul")
		if reading == nil {
			t.Fatalf("Current() returned nil reading, status %d", status)
		}
		if status != 200 {
			t.Errorf("status = %d, want 200", status)
		}
		if reading.City != "Seoul" {
			t.Errorf("City = %q, want Seoul", reading.City)
		}
		if reading.Condition != "Rain" {
			t.Errorf("Condition = %q, want Rain", reading.Condition)
		}
		if reading.Description != "약한 비" {
			t.Errorf("Description = %q", reading.Description)
		}
		if reading.TempC != 18.4 {
			t.Errorf("TempC = %v, want 18.4", reading.TempC)
		}

		if gotQuery["q"] != "Seoul" || gotQuery["appid"] != "test-key" {
			t.Errorf("query params = %v", gotQuery)
		}
		if gotQuery["units"] != "metric" || gotQuery["lang"] != "kr" {
			t.Errorf("expected metric units and Korean text, got %v", gotQuery)
		}
	})

	t.Run("unknown city returns string status code", func(t *testing.T) {
		svc := newWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
		})

		reading, status := svc.Current(ctx, "Atlantis")
		if reading != nil {
			t.Errorf("expected nil reading, got %+v", reading)
		}
		if status != 404 {
			t.Errorf("status = %d, want 404", status)
		}
	})

	t.Run("malformed body fails soft", func(t *testing.T) {
		svc := newWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>gateway error</html>`))
		})

		reading, status := svc.Current(ctx, "Seoul")
		if reading != nil || status != 0 {
			t.Errorf("Current() = (%+v, %d), want (nil, 0)", reading, status)
		}
	})

	t.Run("unreachable server fails soft", func(t *testing.T) {
		client := resty.New()
		client.SetBaseURL("http://127.0.0.1:1")
		svc := NewOpenWeatherService("test-key", client)

		reading, status := svc.Current(ctx, "Seoul")
		if reading != nil || status != 0 {
			t.Errorf("Current() = (%+v, %d), want (nil, 0)", reading, status)
		}
	})

	t.Run("missing weather array leaves condition empty", func(t *testing.T) {
		svc := newWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"cod": 200, "weather": [], "main": {"temp": -2.0}}`))
		})

		reading, status := svc.Current(ctx, "Seoul")
		if reading == nil || status != 200 {
			t.Fatalf("Current() = (%+v, %d)", reading, status)
		}
		if reading.Condition != "" || reading.Description != "" {
			t.Errorf("expected empty condition, got %+v", reading)
		}
	})
}

func TestOwStatusUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  owStatus
	}{
		{name: "number", input: `200`, want: 200},
		{name: "quoted string", input: `"404"`, want: 404},
		{name: "unparseable", input: `"oops"`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s owStatus
			if err := s.UnmarshalJSON([]byte(tt.input)); err != nil {
				t.Fatalf("UnmarshalJSON(%s) error: %v", tt.input, err)
			}
			if s != tt.want {
				t.Errorf("UnmarshalJSON(%s) = %d, want %d", tt.input, s, tt.want)
			}
		})
	}
}
