// Package amap is a thin client for the AMap (高德) REST APIs: geocoding,
// place search and the administrative district tree. Every call is bounded by
// a short timeout; the Fetcher methods additionally swallow failures and
// substitute deterministic defaults so callers never branch on errors.
package amap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wandertrip/travel-roulette/internal/types"
)

const (
	defaultBaseURL = "https://restapi.amap.com"
	fetchTimeout   = 3 * time.Second

	// POI categories searched for attractions.
	attractionTypes = "风景名胜|公园广场|博物馆|展览馆|寺庙道观"

	maxAttractions = 10
)

// Fetcher is the best-effort view of the client used by guide assembly.
// Implementations never return errors; on any failure they log a warning and
// fall back to static data.
type Fetcher interface {
	CityInfo(ctx context.Context, apiKey, city string) types.CityInfo
	Attractions(ctx context.Context, apiKey, city string) []types.Attraction
}

// DistrictLister lists the administrative city names, used by the city
// endpoint. Unlike Fetcher this surfaces errors, the handler owns the
// fallback there.
type DistrictLister interface {
	ListCities(ctx context.Context, apiKey string) ([]string, error)
}

var _ Fetcher = (*Client)(nil)
var _ DistrictLister = (*Client)(nil)

type Client struct {
	logger     *slog.Logger
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		logger:     logger,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type geocodeResponse struct {
	Status   string `json:"status"`
	Info     string `json:"info"`
	Geocodes []struct {
		FormattedAddress string `json:"formatted_address"`
		Location         string `json:"location"`
		Adcode           string `json:"adcode"`
		Level            string `json:"level"`
	} `json:"geocodes"`
}

// Geocode resolves a city name to coordinates. It fails with an error when
// the provider is unreachable, answers with a non-"1" status or returns no
// geocode at all.
func (c *Client) Geocode(ctx context.Context, apiKey, city string) (*types.CityInfo, error) {
	ctx, span := otel.Tracer("AmapClient").Start(ctx, "Geocode")
	defer span.End()
	span.SetAttributes(attribute.String("city.name", city))

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("address", city)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/v3/geocode/geo", q, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocode request failed")
		return nil, err
	}
	if resp.Status != "1" || len(resp.Geocodes) == 0 {
		err := fmt.Errorf("amap geocode rejected: status=%s info=%s", resp.Status, resp.Info)
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocode rejected")
		return nil, err
	}

	geo := resp.Geocodes[0]
	name := geo.FormattedAddress
	if name == "" {
		name = city
	}
	span.SetStatus(codes.Ok, "geocode resolved")
	return &types.CityInfo{
		Name:        name,
		Coordinates: geo.Location,
		Adcode:      geo.Adcode,
		Level:       geo.Level,
	}, nil
}

type placeSearchResponse struct {
	Status string `json:"status"`
	Info   string `json:"info"`
	POIs   []struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Location string `json:"location"`
		Address  string `json:"address"`
	} `json:"pois"`
}

// SearchAttractions returns up to 10 scenic POIs for a city.
func (c *Client) SearchAttractions(ctx context.Context, apiKey, city string) ([]types.Attraction, error) {
	ctx, span := otel.Tracer("AmapClient").Start(ctx, "SearchAttractions")
	defer span.End()
	span.SetAttributes(attribute.String("city.name", city))

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("keywords", city)
	q.Set("types", attractionTypes)
	q.Set("city", city)
	q.Set("offset", "10")
	q.Set("page", "1")

	var resp placeSearchResponse
	if err := c.getJSON(ctx, "/v3/place/text", q, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "place search failed")
		return nil, err
	}
	if resp.Status != "1" {
		err := fmt.Errorf("amap place search rejected: status=%s info=%s", resp.Status, resp.Info)
		span.RecordError(err)
		span.SetStatus(codes.Error, "place search rejected")
		return nil, err
	}

	attractions := make([]types.Attraction, 0, len(resp.POIs))
	for _, poi := range resp.POIs {
		if len(attractions) >= maxAttractions {
			break
		}
		t := poi.Type
		if t == "" {
			t = "景点"
		}
		attractions = append(attractions, types.Attraction{
			Name:        poi.Name,
			Type:        t,
			Coordinates: poi.Location,
			Address:     poi.Address,
		})
	}
	span.SetAttributes(attribute.Int("attractions.count", len(attractions)))
	span.SetStatus(codes.Ok, "place search resolved")
	return attractions, nil
}

type districtResponse struct {
	Status    string     `json:"status"`
	Info      string     `json:"info"`
	Districts []district `json:"districts"`
}

type district struct {
	Name      string     `json:"name"`
	Level     string     `json:"level"`
	Districts []district `json:"districts"`
}

// ListCities walks the national district tree and returns the deduplicated,
// sorted names of every prefecture-level city.
func (c *Client) ListCities(ctx context.Context, apiKey string) ([]string, error) {
	ctx, span := otel.Tracer("AmapClient").Start(ctx, "ListCities")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("keywords", "中国")
	q.Set("subdistrict", "3")
	q.Set("extensions", "base")

	var resp districtResponse
	if err := c.getJSON(ctx, "/v3/config/district", q, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "district request failed")
		return nil, err
	}
	if resp.Status != "1" {
		err := fmt.Errorf("amap district query rejected: status=%s info=%s", resp.Status, resp.Info)
		span.RecordError(err)
		span.SetStatus(codes.Error, "district query rejected")
		return nil, err
	}

	seen := map[string]struct{}{}
	var walk func([]district)
	walk = func(list []district) {
		for _, d := range list {
			if d.Level == "city" && d.Name != "" {
				seen[d.Name] = struct{}{}
			}
			walk(d.Districts)
		}
	}
	walk(resp.Districts)

	cities := make([]string, 0, len(seen))
	for name := range seen {
		cities = append(cities, name)
	}
	sort.Strings(cities)

	span.SetAttributes(attribute.Int("cities.count", len(cities)))
	span.SetStatus(codes.Ok, "district tree walked")
	return cities, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build amap request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("amap request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("amap returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode amap response: %w", err)
	}
	return nil
}

// CityInfo is the best-effort variant of Geocode: a missing key skips the
// call, any failure logs a warning, and both paths return the static default
// entry for the city.
func (c *Client) CityInfo(ctx context.Context, apiKey, city string) types.CityInfo {
	if apiKey == "" {
		return DefaultCityInfo(city)
	}
	info, err := c.Geocode(ctx, apiKey, city)
	if err != nil {
		c.logger.WarnContext(ctx, "City lookup failed, using default coordinates",
			slog.String("city", city), slog.Any("error", err))
		return DefaultCityInfo(city)
	}
	return *info
}

// Attractions is the best-effort variant of SearchAttractions: a missing key
// or any failure yields an empty list, never an error.
func (c *Client) Attractions(ctx context.Context, apiKey, city string) []types.Attraction {
	if apiKey == "" {
		return nil
	}
	attractions, err := c.SearchAttractions(ctx, apiKey, city)
	if err != nil {
		c.logger.WarnContext(ctx, "Attraction lookup failed, continuing without POIs",
			slog.String("city", city), slog.Any("error", err))
		return nil
	}
	return attractions
}
