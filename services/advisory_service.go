// services/advisory_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"flexitrip-backend/utils"
)

// AdvisoryService bundles the external read-only data sources
// (weather, events, hotel pricing, route optimization). Every call is
// time-bounded by the shared client timeout, and every failure comes
// back as a plain error that callers treat as recoverable: they fall
// back to static output and keep going.
type AdvisoryService struct {
	http *http.Client

	weatherKey  string
	eventsToken string
	hotelsToken string
	routesKey   string
}

func NewAdvisoryService() *AdvisoryService {
	return &AdvisoryService{
		http:        &http.Client{Timeout: externalCallTimeout},
		weatherKey:  utils.EnvOrDefault("OPENWEATHER_API_KEY", ""),
		eventsToken: utils.EnvOrDefault("EVENTBRITE_TOKEN", ""),
		hotelsToken: utils.EnvOrDefault("MAKCORPS_TOKEN", ""),
		routesKey:   utils.EnvOrDefault("ORS_API_KEY", ""),
	}
}

// WeatherReport is the trimmed current-weather view.
type WeatherReport struct {
	Temperature float64 `json:"temperature"`
	Conditions  string  `json:"conditions"`
}

// Weather fetches current conditions for a destination.
func (s *AdvisoryService) Weather(ctx context.Context, destination string) (*WeatherReport, error) {
	if s.weatherKey == "" {
		return nil, errors.New("weather fetch failed: OPENWEATHER_API_KEY is not configured")
	}

	endpoint := fmt.Sprintf(
		"https://api.openweathermap.org/data/2.5/weather?q=%s&appid=%s&units=metric",
		url.QueryEscape(destination), url.QueryEscape(s.weatherKey))

	var payload struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := s.getJSON(ctx, endpoint, nil, &payload); err != nil {
		return nil, fmt.Errorf("weather fetch failed: %w", err)
	}

	report := &WeatherReport{Temperature: payload.Main.Temp}
	if len(payload.Weather) > 0 {
		report.Conditions = payload.Weather[0].Description
	}
	return report, nil
}

// Events searches local events near a location.
func (s *AdvisoryService) Events(ctx context.Context, query, location string) (json.RawMessage, error) {
	if s.eventsToken == "" {
		return nil, errors.New("event fetch failed: EVENTBRITE_TOKEN is not configured")
	}

	endpoint := fmt.Sprintf(
		"https://www.eventbriteapi.com/v3/events/search/?q=%s&location.address=%s",
		url.QueryEscape(query), url.QueryEscape(location))

	var payload json.RawMessage
	headers := map[string]string{"Authorization": "Bearer " + s.eventsToken}
	if err := s.getJSON(ctx, endpoint, headers, &payload); err != nil {
		return nil, fmt.Errorf("event fetch failed: %w", err)
	}
	return payload, nil
}

// HotelListing is one hotel with coordinates.
type HotelListing struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Hotels fetches hotel listings with coordinates for a location.
func (s *AdvisoryService) Hotels(ctx context.Context, location string) ([]HotelListing, error) {
	if s.hotelsToken == "" {
		return nil, errors.New("hotel fetch failed: MAKCORPS_TOKEN is not configured")
	}

	endpoint := "https://api.makcorps.com/free/" + url.PathEscape(location)

	var payload struct {
		Hotels []struct {
			Name    string `json:"name"`
			Geocode struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"geocode"`
		} `json:"hotels"`
	}
	headers := map[string]string{"Authorization": "JWT " + s.hotelsToken}
	if err := s.getJSON(ctx, endpoint, headers, &payload); err != nil {
		return nil, fmt.Errorf("hotel fetch failed: %w", err)
	}

	listings := make([]HotelListing, 0, len(payload.Hotels))
	for _, hotel := range payload.Hotels {
		if hotel.Geocode.Latitude == 0 && hotel.Geocode.Longitude == 0 {
			continue
		}
		listings = append(listings, HotelListing{
			Name: hotel.Name,
			Lat:  hotel.Geocode.Latitude,
			Lon:  hotel.Geocode.Longitude,
		})
	}
	return listings, nil
}

// RouteStop is one named coordinate on a route.
type RouteStop struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// OptimizeRoute asks OpenRouteService for an optimized visiting order.
// The first stop is the start; at least two stops are required.
func (s *AdvisoryService) OptimizeRoute(ctx context.Context, stops []RouteStop) (json.RawMessage, error) {
	if s.routesKey == "" {
		return nil, errors.New("route optimization failed: ORS_API_KEY is not configured")
	}
	if len(stops) < 2 {
		return nil, errors.New("route optimization failed: not enough stops")
	}

	// ORS wants [lon, lat] pairs, a vehicle (the start) and jobs.
	locations := make([][2]float64, len(stops))
	for i, stop := range stops {
		locations[i] = [2]float64{stop.Lon, stop.Lat}
	}

	jobs := make([]map[string]interface{}, 0, len(locations)-1)
	for i, loc := range locations[1:] {
		jobs = append(jobs, map[string]interface{}{"id": i + 1, "location": loc})
	}
	body, err := json.Marshal(map[string]interface{}{
		"vehicles": []map[string]interface{}{
			{"id": 1, "profile": "driving-car", "start": locations[0]},
		},
		"jobs": jobs,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.openrouteservice.org/v2/optimization", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.routesKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route optimization failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("route optimization failed: %s", resp.Status)
	}

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("route optimization failed: %w", err)
	}
	return payload, nil
}

func (s *AdvisoryService) getJSON(ctx context.Context, endpoint string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
