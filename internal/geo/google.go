package geo

import (
	"context"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

const (
	// Radius in metres for an explicit category search.
	categorySearchRadius = 1000
	// Radius for the generic nearby enrichment attached to a lookup.
	enrichmentRadius = 500
)

// GoogleProvider implements Provider on the Google Maps Platform.
// A forward search chains three calls: text search, place details and a
// nearby search off the first result. Only the first call may fail the
// lookup; the other two degrade to absence.
type GoogleProvider struct {
	client   *maps.Client
	language string
	region   string
	logger   *slog.Logger
}

// NewGoogleProvider creates a GoogleProvider with the given API key.
// Extra client options are appended after the key, which lets tests point
// the client at a fake upstream.
func NewGoogleProvider(apiKey, language, region string, logger *slog.Logger, opts ...maps.ClientOption) (*GoogleProvider, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("google: create maps client: %w", err)
	}
	return &GoogleProvider{
		client:   client,
		language: language,
		region:   region,
		logger:   logger,
	}, nil
}

func (p *GoogleProvider) ForwardSearch(ctx context.Context, text string) (*Place, error) {
	text, err := validateQuery(text)
	if err != nil {
		return nil, fmt.Errorf("forward search: %w", err)
	}

	resp, err := p.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    text,
		Language: p.language,
		Region:   p.region,
	})
	if err != nil {
		return nil, fmt.Errorf("google: text search %q: %w", text, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, text)
	}

	r := resp.Results[0]
	place := &Place{
		Name:             r.Name,
		FormattedAddress: r.FormattedAddress,
		Coordinates: &Coordinates{
			Lat: r.Geometry.Location.Lat,
			Lng: r.Geometry.Location.Lng,
		},
		Categories: r.Types,
		Rating:     float64(r.Rating),
		SourceID:   r.PlaceID,
	}

	// Enrichment calls. Neither may fail the primary result.
	place.Detail = p.placeDetail(ctx, r.PlaceID)
	place.Nearby = p.nearbyPlaces(ctx, place.Coordinates.Lat, place.Coordinates.Lng, enrichmentRadius, "")
	if len(place.Nearby) > maxNearby {
		place.Nearby = place.Nearby[:maxNearby]
	}

	return place, nil
}

func (p *GoogleProvider) Geocode(ctx context.Context, address string) (Coordinates, string, error) {
	address, err := validateQuery(address)
	if err != nil {
		return Coordinates{}, "", fmt.Errorf("geocode: %w", err)
	}

	results, err := p.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Language: p.language,
		Region:   p.region,
	})
	if err != nil {
		return Coordinates{}, "", fmt.Errorf("google: geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return Coordinates{}, "", fmt.Errorf("%w: %q", ErrNotFound, address)
	}

	r := results[0]
	coords := Coordinates{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng}
	return coords, r.FormattedAddress, nil
}

func (p *GoogleProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (*Place, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}

	results, err := p.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: lat, Lng: lng},
		Language: p.language,
	})
	if err != nil {
		return nil, fmt.Errorf("google: reverse geocode %f,%f: %w", lat, lng, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no address at %f,%f", ErrNotFound, lat, lng)
	}

	r := results[0]
	name := "Unknown Location"
	if len(r.AddressComponents) > 0 {
		name = r.AddressComponents[0].LongName
	}

	place := &Place{
		Name:             name,
		FormattedAddress: r.FormattedAddress,
		Coordinates:      &Coordinates{Lat: lat, Lng: lng},
		Categories:       r.Types,
	}
	place.Nearby = p.nearbyPlaces(ctx, lat, lng, enrichmentRadius, "")
	if len(place.Nearby) > maxNearby {
		place.Nearby = place.Nearby[:maxNearby]
	}
	return place, nil
}

func (p *GoogleProvider) NearbySearch(ctx context.Context, lat, lng float64, category string) ([]Place, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   categorySearchRadius,
		Language: p.language,
	}
	if category != "" {
		req.Type = maps.PlaceType(category)
	}

	resp, err := p.client.NearbySearch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("google: nearby search: %w", err)
	}

	places := shapeGoogleNearby(lat, lng, resp.Results)
	if len(places) == 0 {
		return nil, fmt.Errorf("%w: nothing near %f,%f for %q", ErrNotFound, lat, lng, category)
	}
	return places, nil
}

// placeDetail fetches extended details for a place. Failures are swallowed:
// the detail block is an optional enrichment of an already successful lookup.
func (p *GoogleProvider) placeDetail(ctx context.Context, placeID string) *Detail {
	r, err := p.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID:  placeID,
		Language: p.language,
	})
	if err != nil {
		p.logger.Debug("place details fetch failed", "place_id", placeID, "error", err)
		return nil
	}

	detail := &Detail{
		Phone:   r.FormattedPhoneNumber,
		Website: r.Website,
	}
	if r.OpeningHours != nil {
		detail.OpeningHours = r.OpeningHours.WeekdayText
	}
	return detail
}

// nearbyPlaces is the swallow-errors variant used for enrichment.
func (p *GoogleProvider) nearbyPlaces(ctx context.Context, lat, lng float64, radius uint, category string) []Place {
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   radius,
		Language: p.language,
	}
	if category != "" {
		req.Type = maps.PlaceType(category)
	}

	resp, err := p.client.NearbySearch(ctx, req)
	if err != nil {
		p.logger.Debug("nearby enrichment failed", "error", err)
		return nil
	}
	return shapeGoogleNearby(lat, lng, resp.Results)
}

func shapeGoogleNearby(centerLat, centerLng float64, results []maps.PlacesSearchResult) []Place {
	places := make([]Place, 0, len(results))
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		places = append(places, Place{
			Name:             r.Name,
			FormattedAddress: r.Vicinity,
			Coordinates: &Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			Categories: r.Types,
			Rating:     float64(r.Rating),
			SourceID:   r.PlaceID,
			Distance:   Distance(centerLat, centerLng, r.Geometry.Location.Lat, r.Geometry.Location.Lng),
		})
	}
	sortByDistance(places, func(p Place) float64 {
		return haversineKm(centerLat, centerLng, p.Coordinates.Lat, p.Coordinates.Lng)
	})
	return places
}
