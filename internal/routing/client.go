package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Client resolves addresses through a Nominatim-compatible geocoder and asks
// an OSRM-compatible router for the driving duration between them.
type Client struct {
	geocodeBaseURL string
	routeBaseURL   string
	httpClient     *http.Client
	logger         *zap.Logger
}

func NewClient(geocodeBaseURL, routeBaseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		geocodeBaseURL: geocodeBaseURL,
		routeBaseURL:   routeBaseURL,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
	}
}

type coordinates struct {
	Lat float64
	Lon float64
}

func (c *Client) TravelTime(ctx context.Context, from, to string) (Estimate, error) {
	origin, err := c.geocode(ctx, from)
	if err != nil {
		return Estimate{}, fmt.Errorf("geocode origin: %w", err)
	}

	dest, err := c.geocode(ctx, to)
	if err != nil {
		return Estimate{}, fmt.Errorf("geocode destination: %w", err)
	}

	est, err := c.route(ctx, origin, dest)
	if err != nil {
		return Estimate{}, fmt.Errorf("route: %w", err)
	}

	c.logger.Debug("travel time resolved",
		zap.String("from", from),
		zap.String("to", to),
		zap.Duration("duration", est.Duration),
		zap.Float64("distance_km", est.DistanceKm),
	)
	return est, nil
}

func (c *Client) geocode(ctx context.Context, address string) (coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s",
		c.geocodeBaseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return coordinates{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return coordinates{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	// Nominatim returns lat/lon as strings.
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return coordinates{}, fmt.Errorf("decode geocoder response: %w", err)
	}
	if len(results) == 0 {
		return coordinates{}, fmt.Errorf("no geocoding result for %q", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return coordinates{}, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return coordinates{}, fmt.Errorf("parse longitude: %w", err)
	}

	return coordinates{Lat: lat, Lon: lon}, nil
}

func (c *Client) route(ctx context.Context, origin, dest coordinates) (Estimate, error) {
	endpoint := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.routeBaseURL, origin.Lon, origin.Lat, dest.Lon, dest.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Estimate{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Estimate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Estimate{}, fmt.Errorf("router returned status %d", resp.StatusCode)
	}

	var body struct {
		Code   string `json:"code"`
		Routes []struct {
			Duration float64 `json:"duration"` // seconds
			Distance float64 `json:"distance"` // meters
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Estimate{}, fmt.Errorf("decode router response: %w", err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return Estimate{}, fmt.Errorf("no route found (code %q)", body.Code)
	}

	return Estimate{
		Duration:   time.Duration(body.Routes[0].Duration * float64(time.Second)),
		DistanceKm: body.Routes[0].Distance / 1000,
	}, nil
}
