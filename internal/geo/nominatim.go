package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// userAgent identifies the client on every request to the free services,
// as their usage policies require.
const userAgent = "Cilok Location Toolkit (https://github.com/cloud-dark/cilok)"

// FreeProvider implements Provider on the OpenStreetMap stack: Nominatim
// for forward and reverse geocoding, Overpass for nearby points of
// interest. The two services are never mixed with the commercial backend
// within one run.
type FreeProvider struct {
	httpClient   *http.Client
	nominatimURL string
	overpassURL  string
	country      string
	language     string
	logger       *slog.Logger
}

// NewFreeProvider creates a FreeProvider constrained to the given country
// code for first-stage searches.
func NewFreeProvider(country, language string, timeout time.Duration, logger *slog.Logger) *FreeProvider {
	return &FreeProvider{
		httpClient:   &http.Client{Timeout: timeout},
		nominatimURL: "https://nominatim.openstreetmap.org",
		overpassURL:  "https://overpass-api.de/api/interpreter",
		country:      country,
		language:     language,
		logger:       logger,
	}
}

// nominatimPlace mirrors one entry of a Nominatim search or reverse
// response. Coordinates arrive as strings.
type nominatimPlace struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type"`
	Class       string  `json:"class"`
	OSMID       int64   `json:"osm_id"`
	OSMType     string  `json:"osm_type"`
	Importance  float64 `json:"importance"`
	Error       string  `json:"error"`
}

// ForwardSearch runs the two-stage Nominatim query: first constrained to
// the configured country, then globally if the first stage comes back
// empty. Both stages share the same result shaping.
func (p *FreeProvider) ForwardSearch(ctx context.Context, text string) (*Place, error) {
	text, err := validateQuery(text)
	if err != nil {
		return nil, fmt.Errorf("forward search: %w", err)
	}

	results, err := p.search(ctx, text, true, 5)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		p.logger.Debug("constrained search empty, retrying globally", "query", text)
		results, err = p.search(ctx, text, false, 5)
		if err != nil {
			return nil, err
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, text)
	}

	place, err := p.shapePlace(results[0])
	if err != nil {
		return nil, err
	}

	// Nearby enrichment. Failure degrades to an empty list.
	nearby, err := p.overpassNearby(ctx, place.Coordinates.Lat, place.Coordinates.Lng, enrichmentRadius, "")
	if err != nil {
		p.logger.Debug("nearby enrichment failed", "error", err)
	} else {
		if len(nearby) > maxNearby {
			nearby = nearby[:maxNearby]
		}
		place.Nearby = nearby
	}

	return place, nil
}

func (p *FreeProvider) Geocode(ctx context.Context, address string) (Coordinates, string, error) {
	address, err := validateQuery(address)
	if err != nil {
		return Coordinates{}, "", fmt.Errorf("geocode: %w", err)
	}

	results, err := p.search(ctx, address, true, 1)
	if err != nil {
		return Coordinates{}, "", err
	}
	if len(results) == 0 {
		return Coordinates{}, "", fmt.Errorf("%w: %q", ErrNotFound, address)
	}

	coords, err := parseNominatimCoords(results[0])
	if err != nil {
		return Coordinates{}, "", err
	}
	return coords, results[0].DisplayName, nil
}

func (p *FreeProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*Place, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}

	params := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lng, 'f', -1, 64)},
		"format":         {"json"},
		"addressdetails": {"1"},
		"zoom":           {"18"},
	}

	body, err := p.get(ctx, p.nominatimURL+"/reverse?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var result nominatimPlace
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("nominatim: decode reverse response: %w", err)
	}
	if result.Error != "" || result.DisplayName == "" {
		return nil, fmt.Errorf("%w: no address at %f,%f", ErrNotFound, lat, lng)
	}

	name := result.Name
	if name == "" {
		name = firstAddressPart(result.DisplayName)
	}
	place := &Place{
		Name:             name,
		FormattedAddress: result.DisplayName,
		Coordinates:      &Coordinates{Lat: lat, Lng: lng},
		Categories:       nonEmpty(result.Type, result.Class),
		SourceID:         sourceID(result),
	}

	nearby, err := p.overpassNearby(ctx, lat, lng, enrichmentRadius, "")
	if err != nil {
		p.logger.Debug("nearby enrichment failed", "error", err)
	} else {
		if len(nearby) > maxNearby {
			nearby = nearby[:maxNearby]
		}
		place.Nearby = nearby
	}

	return place, nil
}

func (p *FreeProvider) NearbySearch(ctx context.Context, lat, lng float64, category string) ([]Place, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	places, err := p.overpassNearby(ctx, lat, lng, categorySearchRadius, category)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("%w: nothing near %f,%f for %q", ErrNotFound, lat, lng, category)
	}
	return places, nil
}

// search issues one Nominatim search call, optionally constrained to the
// configured country.
func (p *FreeProvider) search(ctx context.Context, query string, countryConstrained bool, limit int) ([]nominatimPlace, error) {
	params := url.Values{
		"q":               {query},
		"format":          {"json"},
		"addressdetails":  {"1"},
		"limit":           {strconv.Itoa(limit)},
		"accept-language": {p.language},
	}
	if countryConstrained && p.country != "" {
		params.Set("countrycodes", p.country)
	}

	body, err := p.get(ctx, p.nominatimURL+"/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var results []nominatimPlace
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("nominatim: decode search response: %w", err)
	}
	return results, nil
}

func (p *FreeProvider) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nominatim: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

func (p *FreeProvider) shapePlace(r nominatimPlace) (*Place, error) {
	coords, err := parseNominatimCoords(r)
	if err != nil {
		return nil, err
	}
	return &Place{
		Name:             firstAddressPart(r.DisplayName),
		FormattedAddress: r.DisplayName,
		Coordinates:      &coords,
		Categories:       nonEmpty(r.Type, r.Class),
		SourceID:         sourceID(r),
	}, nil
}

func parseNominatimCoords(r nominatimPlace) (Coordinates, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("nominatim: parse lat %q: %w", r.Lat, err)
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("nominatim: parse lon %q: %w", r.Lon, err)
	}
	return Coordinates{Lat: lat, Lng: lng}, nil
}

func sourceID(r nominatimPlace) string {
	if r.OSMID == 0 {
		return ""
	}
	return fmt.Sprintf("%s/%d", r.OSMType, r.OSMID)
}

func firstAddressPart(displayName string) string {
	if i := strings.Index(displayName, ","); i >= 0 {
		return strings.TrimSpace(displayName[:i])
	}
	return displayName
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
