// Package geocode suggests street addresses from a Nominatim search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	DefaultURL       = "https://nominatim.openstreetmap.org/search"
	DefaultRegion    = "washington"
	DefaultUserAgent = "PaintPro Web Application"
	MinQueryLength   = 3
	resultLimit      = 5
)

// ErrSuperseded is returned when a newer lookup for the same client replaced this one.
var ErrSuperseded = errors.New("geocode: superseded by a newer lookup")

type Address struct {
	HouseNumber string `json:"house_number,omitempty"`
	Road        string `json:"road,omitempty"`
	City        string `json:"city,omitempty"`
	County      string `json:"county,omitempty"`
	State       string `json:"state,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

type place struct {
	PlaceID     int64   `json:"place_id"`
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Address     Address `json:"address"`
}

type Suggestion struct {
	Label       string  `json:"label"`
	DisplayName string  `json:"displayName"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Address     Address `json:"address"`
}

// Result is always safe to render. Degraded marks a failed lookup.
type Result struct {
	Suggestions []Suggestion `json:"suggestions"`
	Degraded    bool         `json:"degraded"`
}

type Config struct {
	URL       string
	Region    string
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger

	mu       sync.Mutex
	inflight map[string]*lookup
}

type lookup struct {
	cancel context.CancelCauseFunc
}

func New(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:      cfg,
		http:     httpClient,
		logger:   logger.With("component", "geocode"),
		inflight: make(map[string]*lookup),
	}
}

// Suggest looks up query for clientKey. Queries shorter than MinQueryLength
// return no suggestions without a request. A lookup still running for the
// same clientKey is cancelled and returns ErrSuperseded.
func (c *Client) Suggest(ctx context.Context, clientKey, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return Result{Suggestions: []Suggestion{}}, nil
	}

	ctx, done := c.begin(ctx, clientKey)
	defer done()

	places, err := c.search(ctx, query)
	if err != nil {
		if errors.Is(context.Cause(ctx), ErrSuperseded) {
			return Result{Suggestions: []Suggestion{}}, ErrSuperseded
		}
		c.logger.Warn("address lookup failed", "error", err)
		return Result{Suggestions: []Suggestion{}, Degraded: true}, err
	}

	suggestions := make([]Suggestion, 0, len(places))
	for _, p := range places {
		if !strings.EqualFold(p.Address.State, c.cfg.Region) {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Label:       FormatAddress(p.Address),
			DisplayName: p.DisplayName,
			Lat:         p.Lat,
			Lon:         p.Lon,
			Address:     p.Address,
		})
	}
	return Result{Suggestions: suggestions}, nil
}

func (c *Client) begin(parent context.Context, clientKey string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(parent)
	if clientKey == "" {
		return ctx, func() { cancel(nil) }
	}

	l := &lookup{cancel: cancel}
	c.mu.Lock()
	if prev, ok := c.inflight[clientKey]; ok {
		prev.cancel(ErrSuperseded)
	}
	c.inflight[clientKey] = l
	c.mu.Unlock()

	return ctx, func() {
		c.mu.Lock()
		if c.inflight[clientKey] == l {
			delete(c.inflight, clientKey)
		}
		c.mu.Unlock()
		cancel(nil)
	}
}

func (c *Client) search(ctx context.Context, query string) ([]place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", fmt.Sprint(resultLimit))
	params.Set("countrycodes", "us")
	params.Set("state", c.cfg.Region)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request: unexpected status %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	return places, nil
}

// FormatAddress renders "house_number road, city, state, postcode", skipping empty parts.
func FormatAddress(a Address) string {
	parts := make([]string, 0, 4)
	street := strings.TrimSpace(strings.Join(nonEmpty(a.HouseNumber, a.Road), " "))
	if street != "" {
		parts = append(parts, street)
	}
	parts = append(parts, nonEmpty(a.City, a.State, a.Postcode)...)
	return strings.Join(parts, ", ")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
