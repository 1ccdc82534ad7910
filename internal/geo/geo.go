// Package geo provides a uniform adapter over the supported geocoding
// backends: the Google Maps Platform (commercial) and the OpenStreetMap
// stack of Nominatim plus Overpass (free). One backend is selected at
// startup from credential presence and used for every call in a run.
package geo

import (
	"context"
	"errors"
	"math"
	"strings"
)

// Sentinel errors returned by adapter calls. Callers match them with
// errors.Is; everything else is a transport or upstream failure.
var (
	ErrInvalidInput = errors.New("geo: invalid input")
	ErrNotFound     = errors.New("geo: location not found")
)

// maxNearby bounds the nearby list attached to a resolved place.
const maxNearby = 5

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Detail holds optional place enrichment fetched in a secondary call.
// Absence never fails the parent lookup.
type Detail struct {
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`
	OpeningHours []string `json:"opening_hours,omitempty"`
}

// Place is the backend-neutral result shape. Backend-specific field
// names never leak past the adapter.
type Place struct {
	Name             string       `json:"name"`
	FormattedAddress string       `json:"formatted_address"`
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
	Categories       []string     `json:"categories,omitempty"`
	Rating           float64      `json:"rating,omitempty"`
	Nearby           []Place      `json:"nearby,omitempty"`
	SourceID         string       `json:"source_id,omitempty"`
	Detail           *Detail      `json:"detail,omitempty"`

	// Distance is the formatted distance from the search center.
	// Only set on entries produced by a nearby search.
	Distance string `json:"distance,omitempty"`
}

// Provider is the lookup primitive the resolution loop drives.
type Provider interface {
	// ForwardSearch resolves free text to a single place with coordinates.
	ForwardSearch(ctx context.Context, text string) (*Place, error)

	// Geocode resolves an address to coordinates and a formatted address.
	Geocode(ctx context.Context, address string) (Coordinates, string, error)

	// ReverseGeocode resolves coordinates to the nearest place record.
	ReverseGeocode(ctx context.Context, lat, lng float64) (*Place, error)

	// NearbySearch returns places around a center for a logical category,
	// sorted ascending by distance from the center.
	NearbySearch(ctx context.Context, lat, lng float64, category string) ([]Place, error)
}

// Selection names the backend chosen for a run. It is resolved once at
// startup and never re-evaluated per call.
type Selection int

const (
	// SelectionFree routes through Nominatim and Overpass.
	SelectionFree Selection = iota
	// SelectionCommercial routes through the Google Maps Platform.
	SelectionCommercial
)

func (s Selection) String() string {
	if s == SelectionCommercial {
		return "google"
	}
	return "openstreetmap"
}

func validateQuery(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrInvalidInput
	}
	return text, nil
}

func validateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return ErrInvalidInput
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidInput
	}
	return nil
}
