package georesolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
)

// Nominatim is a Geocoder backed by a Nominatim HTTP endpoint. The public
// instance asks clients to identify themselves and to stay at or below one
// request per second, so the client sends a User-Agent and enforces a minimum
// interval between requests.
type Nominatim struct {
	baseURL     string
	userAgent   string
	client      *http.Client
	minInterval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewNominatim creates a Nominatim client. timeout bounds each HTTP call;
// minInterval spaces consecutive requests (zero disables the throttle).
func NewNominatim(baseURL, userAgent string, timeout, minInterval time.Duration) *Nominatim {
	return &Nominatim{
		baseURL:     baseURL,
		userAgent:   userAgent,
		client:      &http.Client{Timeout: timeout},
		minInterval: minInterval,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type reverseResult struct {
	Error   string `json:"error"`
	Address struct {
		City        string `json:"city"`
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Forward resolves a free-text query to its best-match location, or nil when
// the service finds nothing.
func (n *Nominatim) Forward(ctx context.Context, query string) (*Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	body, err := n.get(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var results []searchResult
	if err := sonic.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := decimal.NewFromString(results[0].Lat)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := decimal.NewFromString(results[0].Lon)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return &Location{Latitude: lat, Longitude: lon}, nil
}

// Reverse resolves a coordinate pair to its structured address, in English so
// country comparisons stay stable across locales.
func (n *Nominatim) Reverse(ctx context.Context, lat, lon decimal.Decimal) (*Address, error) {
	params := url.Values{}
	params.Set("lat", lat.String())
	params.Set("lon", lon.String())
	params.Set("format", "jsonv2")
	params.Set("accept-language", "en")

	body, err := n.get(ctx, "/reverse", params)
	if err != nil {
		return nil, err
	}

	var result reverseResult
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding reverse response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("reverse geocoding failed: %s", result.Error)
	}

	return &Address{
		City:        result.Address.City,
		Country:     result.Address.Country,
		CountryCode: result.Address.CountryCode,
	}, nil
}

func (n *Nominatim) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	n.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

func (n *Nominatim) throttle() {
	if n.minInterval <= 0 {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if wait := n.minInterval - time.Since(n.last); wait > 0 {
		time.Sleep(wait)
	}
	n.last = time.Now()
}
