package geo

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Distance returns the great-circle distance between two points formatted
// as integer metres under one kilometre, otherwise kilometres to one
// decimal place.
func Distance(lat1, lng1, lat2, lng2 float64) string {
	km := haversineKm(lat1, lng1, lat2, lng2)
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm", km)
}

var magnitudeCleaner = regexp.MustCompile(`[^0-9.]`)

// EstimateDuration turns a formatted distance label into a rough travel
// time range in Indonesian. The numeric magnitude is parsed out of the
// label with the unit suffix ignored, then one of three speed bands
// applies. This is a coarse heuristic, not a routing computation: it knows
// nothing about transport mode, terrain or traffic.
func EstimateDuration(distanceLabel string) string {
	d, err := strconv.ParseFloat(magnitudeCleaner.ReplaceAllString(distanceLabel, ""), 64)
	if err != nil {
		return ""
	}

	switch {
	case d < 50:
		return fmt.Sprintf("%d menit - 1.5 jam", int(math.Round(d/25*60)))
	case d < 200:
		return fmt.Sprintf("%d - %d jam", int(math.Round(d/60)), int(math.Round(d/50)))
	default:
		return fmt.Sprintf("%d - %d jam", int(math.Round(d/70)), int(math.Round(d/50)))
	}
}

// sortByDistance performs an insertion sort (fine for small N) on any slice
// where each element exposes a distance via the accessor function.
func sortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
