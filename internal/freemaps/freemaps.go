// Package freemaps fetches optional place enrichment from free open
// services: current weather from open-meteo and elevation from
// open-elevation. Absence of either never fails the caller; every lookup
// degrades to nil on any error.
package freemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client queries the free enrichment services.
type Client struct {
	httpClient   *http.Client
	weatherURL   string
	elevationURL string
	logger       *slog.Logger
}

// NewClient creates a Client with a short timeout: enrichment must never
// hold up a lookup for long.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		weatherURL:   "https://api.open-meteo.com/v1/forecast",
		elevationURL: "https://api.open-elevation.com/api/v1/lookup",
		logger:       logger,
	}
}

// CurrentWeather is the open-meteo current-conditions block.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	Windspeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
}

type weatherResponse struct {
	CurrentWeather *CurrentWeather `json:"current_weather"`
}

// Weather returns the current conditions at a point, or nil when the
// service is unavailable.
func (c *Client) Weather(ctx context.Context, lat, lng float64) *CurrentWeather {
	params := url.Values{
		"latitude":        {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":       {strconv.FormatFloat(lng, 'f', -1, 64)},
		"current_weather": {"true"},
		"timezone":        {"auto"},
	}

	var parsed weatherResponse
	if err := c.getJSON(ctx, c.weatherURL+"?"+params.Encode(), &parsed); err != nil {
		c.logger.Debug("weather lookup failed", "error", err)
		return nil
	}
	return parsed.CurrentWeather
}

type elevationResponse struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// Elevation returns the elevation in metres at a point, or nil when the
// service is unavailable.
func (c *Client) Elevation(ctx context.Context, lat, lng float64) *float64 {
	u := fmt.Sprintf("%s?locations=%f,%f", c.elevationURL, lat, lng)

	var parsed elevationResponse
	if err := c.getJSON(ctx, u, &parsed); err != nil {
		c.logger.Debug("elevation lookup failed", "error", err)
		return nil
	}
	if len(parsed.Results) == 0 {
		return nil
	}
	return &parsed.Results[0].Elevation
}

func (c *Client) getJSON(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
