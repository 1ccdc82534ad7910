package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// amenityTags maps a logical category to the Overpass amenity regex used
// to query it. Unknown categories fall back to a broad default spanning
// food, finance, health, education and fuel.
var amenityTags = map[string]string{
	"restaurant":  "restaurant|cafe|fast_food|food_court",
	"food":        "restaurant|cafe|fast_food|food_court",
	"hospital":    "hospital|clinic|pharmacy",
	"school":      "school|university|college",
	"bank":        "bank|atm",
	"gas_station": "fuel",
	"shopping":    "marketplace|mall|shop",
}

const defaultAmenities = "restaurant|cafe|fast_food|bank|hospital|school|fuel"

func amenityFor(category string) string {
	if tags, ok := amenityTags[category]; ok {
		return tags
	}
	return defaultAmenities
}

// overpassResponse mirrors the Overpass JSON output. Ways and relations
// carry their coordinates in a center element.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (e overpassElement) coordinates() (float64, float64, bool) {
	if e.Lat != 0 || e.Lon != 0 {
		return e.Lat, e.Lon, true
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon, true
	}
	return 0, 0, false
}

// overpassNearby queries Overpass for named points of interest around a
// center. Results without a resolvable coordinate or a name are dropped;
// the rest are sorted ascending by distance from the center.
func (p *FreeProvider) overpassNearby(ctx context.Context, lat, lng float64, radius int, category string) ([]Place, error) {
	amenity := amenityFor(category)

	var q strings.Builder
	fmt.Fprintf(&q, "[out:json][timeout:25];\n(\n")
	for _, kind := range []string{"node", "way", "relation"} {
		fmt.Fprintf(&q, "  %s[\"amenity\"~%q](around:%d,%f,%f);\n", kind, amenity, radius, lat, lng)
	}
	fmt.Fprintf(&q, ");\nout center meta;")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.overpassURL, strings.NewReader(q.String()))
	if err != nil {
		return nil, fmt.Errorf("overpass: create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("overpass: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass: status %d: %s", resp.StatusCode, body)
	}

	var parsed overpassResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("overpass: decode response: %w", err)
	}

	return shapeOverpassPlaces(lat, lng, parsed.Elements), nil
}

func shapeOverpassPlaces(centerLat, centerLng float64, elements []overpassElement) []Place {
	places := make([]Place, 0, len(elements))
	for _, e := range elements {
		name := e.Tags["name"]
		if name == "" {
			continue
		}
		lat, lng, ok := e.coordinates()
		if !ok {
			continue
		}
		places = append(places, Place{
			Name:             name,
			FormattedAddress: addressFromTags(e.Tags),
			Coordinates:      &Coordinates{Lat: lat, Lng: lng},
			Categories:       nonEmpty(e.Tags["amenity"], e.Tags["cuisine"]),
			SourceID:         fmt.Sprintf("%s/%d", e.Type, e.ID),
			Distance:         Distance(centerLat, centerLng, lat, lng),
		})
	}
	sortByDistance(places, func(p Place) float64 {
		return haversineKm(centerLat, centerLng, p.Coordinates.Lat, p.Coordinates.Lng)
	})
	return places
}

func addressFromTags(tags map[string]string) string {
	parts := make([]string, 0, 3)
	for _, key := range []string{"addr:street", "addr:city", "addr:state"} {
		if v := tags[key]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
