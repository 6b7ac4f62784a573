// Package ors is a client for an openrouteservice-compatible routing API:
// Pelias geocoding plus the v2 directions endpoint.
package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/homeroute/homeroute/internal/logging"
)

// DefaultBaseURL is the hosted openrouteservice endpoint.
const DefaultBaseURL = "https://api.openrouteservice.org"

// defaultTimeout bounds every API call.
const defaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response body is read.
const maxErrorBody = 4096

// defaultPreference is the route optimization criterion sent with every
// directions request.
const defaultPreference = "fastest"

// Client calls the routing API. Safe to share; it holds no per-request state.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API endpoint, e.g. a
// self-hosted instance or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a routing API client authenticated with apiKey.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.ComponentLogger(logger, "ors"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// geocodeResponse is the subset of the Pelias response we consume.
type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves a free-text address to a (longitude, latitude) pair using
// the first search result. Returns ErrNoResults when the address is unknown.
func (c *Client) Geocode(ctx context.Context, address string) (Coordinates, error) {
	query := url.Values{}
	query.Set("text", address)
	query.Set("size", "1")

	var result geocodeResponse
	if err := c.get(ctx, "/geocode/search", query, &result); err != nil {
		return Coordinates{}, fmt.Errorf("geocoding %q: %w", address, err)
	}

	if len(result.Features) == 0 || len(result.Features[0].Geometry.Coordinates) < 2 {
		return Coordinates{}, fmt.Errorf("geocoding %q: %w", address, ErrNoResults)
	}

	coords := result.Features[0].Geometry.Coordinates
	c.logger.Debug().
		Str("address", address).
		Float64("lon", coords[0]).
		Float64("lat", coords[1]).
		Msg("geocoded address")
	return Coordinates{coords[0], coords[1]}, nil
}

// directionsRequest is the v2 directions request body.
type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Units        string      `json:"units,omitempty"`
	Language     string      `json:"language,omitempty"`
	Preference   string      `json:"preference,omitempty"`
	Instructions bool        `json:"instructions"`
}

// directionsResponse is the subset of the v2 directions response we consume.
type directionsResponse struct {
	Routes []Route `json:"routes"`
}

// Directions computes a route from origin to destination for the given
// transportation profile. Returns ErrNoRoute when the API finds none.
func (c *Client) Directions(
	ctx context.Context,
	origin, destination Coordinates,
	profile, units, language string,
) (*Route, error) {
	body := directionsRequest{
		Coordinates: [][]float64{
			{origin.Lon(), origin.Lat()},
			{destination.Lon(), destination.Lat()},
		},
		Units:        units,
		Language:     language,
		Preference:   defaultPreference,
		Instructions: true,
	}

	var result directionsResponse
	if err := c.post(ctx, "/v2/directions/"+url.PathEscape(profile), body, &result); err != nil {
		return nil, fmt.Errorf("directions: %w", err)
	}

	if len(result.Routes) == 0 {
		return nil, ErrNoRoute
	}

	route := result.Routes[0]
	c.logger.Info().
		Str("profile", profile).
		Float64("distance", route.Summary.Distance).
		Float64("duration", route.Summary.Duration).
		Msg("route calculated")
	return &route, nil
}

// ValidateKey probes the API with a minimal geocoding request. Any response
// other than an auth rejection proves the key works; an empty result set is
// fine.
func (c *Client) ValidateKey(ctx context.Context) error {
	query := url.Values{}
	query.Set("text", "test")
	query.Set("size", "1")

	var result geocodeResponse
	if err := c.get(ctx, "/geocode/search", query, &result); err != nil {
		return err
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck // Read-side close

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrInvalidAuth, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &APIError{StatusCode: resp.StatusCode, Message: readAPIMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "malformed response: " + err.Error()}
	}
	return nil
}

// readAPIMessage extracts the error message from an API error body, which is
// either {"error":{"message":"..."}} or {"error":"..."}.
func readAPIMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return "no error detail"
	}

	var structured struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(data, &structured) == nil && structured.Error.Message != "" {
		return structured.Error.Message
	}

	var plain struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &plain) == nil && plain.Error != "" {
		return plain.Error
	}

	return string(data)
}
