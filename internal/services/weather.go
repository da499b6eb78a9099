// OpenWeatherMap implementation of [WeatherProvider]
//
// Response fields based on https://openweathermap.org/current
package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/jii-iin/weathermix/internal/models"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// owStatus decodes the OpenWeatherMap "cod" field, which arrives as a JSON
// number on success (200) but as a string on errors ("404").
type owStatus int

func (s *owStatus) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	code, err := strconv.Atoi(raw)
	if err != nil {
		// Unrecognized status payloads are treated as failure, not an error.
		*s = 0
		return nil
	}
	*s = owStatus(code)
	return nil
}

type owCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type owResponse struct {
	Cod     owStatus      `json:"cod"`
	Weather []owCondition `json:"weather"`
	Main    struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// OpenWeatherService implements [WeatherProvider] against the OpenWeatherMap
// current-conditions endpoint.
type OpenWeatherService struct {
	client *resty.Client
	apiKey string
}

// NewOpenWeatherService creates a weather service with the given API key.
// A nil client gets a default resty client.
func NewOpenWeatherService(apiKey string, client *resty.Client) *OpenWeatherService {
	if client == nil {
		client = resty.New()
	}
	if client.BaseURL == "" {
		client.SetBaseURL(openWeatherBaseURL)
	}

	return &OpenWeatherService{
		client: client,
		apiKey: apiKey,
	}
}

// Current fetches current conditions for city in metric units with Korean
// description text.
//
// Fail-soft: any network or parse failure returns (nil, 0). A non-200 status
// (city not found) returns (nil, status).
func (s *OpenWeatherService) Current(ctx context.Context, city string) (*models.WeatherReading, int) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     city,
			"appid": s.apiKey,
			"units": "metric",
			"lang":  "kr",
		}).
		Get("/weather")
	if err != nil {
		return nil, 0
	}

	var body owResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, 0
	}

	status := int(body.Cod)
	if status != http.StatusOK {
		return nil, status
	}

	reading := &models.WeatherReading{
		City:  city,
		TempC: body.Main.Temp,
	}
	if len(body.Weather) > 0 {
		reading.Condition = body.Weather[0].Main
		reading.Description = body.Weather[0].Description
	}

	return reading, status
}
