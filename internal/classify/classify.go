// Package classify contains the stateless keyword and pattern matchers
// that route a raw query to the right handler. Travel-time intent is
// checked before nearby intent before general handling; a query matching
// both is treated as travel-time.
package classify

import (
	"regexp"
	"strings"
)

var travelKeywords = []string{
	"berapa jam", "berapa lama", "jarak", "waktu tempuh", "dari", "ke",
}

var nearbyKeywords = []string{
	"hotel", "restoran", "rumah sakit", "bank", "terdekat", "di daerah",
}

// locationKeywords is the broader set applied to AI narrative text to
// decide whether the text itself should trigger a search.
var locationKeywords = []string{
	"mencari", "lokasi", "tempat", "alamat", "koordinat",
	"detail", "dimana", "letak", "berada",
	"hotel", "rumah sakit", "restoran", "bank",
}

// travelPatterns recover origin and destination from a travel query.
// First match wins.
var travelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)dari\s+(.+?)\s+ke\s+(.+)`),
	regexp.MustCompile(`(?i)\b([a-zA-Z][a-zA-Z\s]*?)\s+ke\s+(.+)`),
}

var (
	questionTail = regexp.MustCompile(`\?.*$`)
	durationTail = regexp.MustCompile(`(?i)berapa.*$`)
)

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsTravelTimeQuery reports whether the input asks about distance,
// duration or travel between two places.
func IsTravelTimeQuery(query string) bool {
	return containsAny(query, travelKeywords)
}

// IsNearbyQuery reports whether the input asks about points of interest
// or proximity.
func IsNearbyQuery(query string) bool {
	return containsAny(query, nearbyKeywords)
}

// IsLocationQuery reports whether a piece of text (typically an AI
// narrative) signals that a location search should be run against it.
func IsLocationQuery(text string) bool {
	return containsAny(text, locationKeywords)
}

// ExtractTravelLocations recovers the origin and destination from a
// travel-time query. Trailing question marks and "berapa ..." phrases are
// stripped from the destination. Both values are empty when no pattern
// matches, which is a normal outcome rather than an error.
func ExtractTravelLocations(query string) (origin, destination string) {
	for _, pattern := range travelPatterns {
		m := pattern.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		origin = strings.TrimSpace(m[1])
		destination = m[2]
		destination = questionTail.ReplaceAllString(destination, "")
		destination = durationTail.ReplaceAllString(destination, "")
		destination = strings.TrimSpace(destination)
		if origin != "" && destination != "" {
			return origin, destination
		}
	}
	return "", ""
}
