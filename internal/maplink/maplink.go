// Package maplink builds shareable map URLs for a coordinate pair. All
// functions are pure string formatting; nothing here touches the network.
package maplink

import "fmt"

// Link pairs a service name with its URL for rendering.
type Link struct {
	Name string
	URL  string
}

func OpenStreetMap(lat, lng float64) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%f&mlon=%f&zoom=15", lat, lng)
}

func GoogleMaps(lat, lng float64) string {
	return fmt.Sprintf("https://maps.google.com/maps?q=%f,%f", lat, lng)
}

func BingMaps(lat, lng float64) string {
	return fmt.Sprintf("https://www.bing.com/maps?cp=%f~%f&lvl=15", lat, lng)
}

func WikiMapia(lat, lng float64) string {
	return fmt.Sprintf("http://wikimapia.org/#lang=id&lat=%f&lon=%f&z=15", lat, lng)
}

func Yandex(lat, lng float64) string {
	return fmt.Sprintf("https://yandex.com/maps/?ll=%f,%f&z=15", lng, lat)
}

func Here(lat, lng float64) string {
	return fmt.Sprintf("https://wego.here.com/?map=%f,%f,15,normal", lat, lng)
}

// GoogleRoute links a driving route between two points.
func GoogleRoute(originLat, originLng, destLat, destLng float64) string {
	return fmt.Sprintf("https://maps.google.com/maps/dir/%f,%f/%f,%f",
		originLat, originLng, destLat, destLng)
}

// StaticMap returns a key-less static map image URL.
func StaticMap(lat, lng float64, zoom, width, height int) string {
	return fmt.Sprintf(
		"https://staticmap.openstreetmap.de/staticmap.php?center=%f,%f&zoom=%d&size=%dx%d&maptype=mapnik&markers=%f,%f,red-pushpin",
		lat, lng, zoom, width, height, lat, lng)
}

// MapboxStatic returns a Mapbox static map URL, or empty when no key is
// configured.
func MapboxStatic(accessToken string, lat, lng float64, zoom, width, height int) string {
	if accessToken == "" {
		return ""
	}
	return fmt.Sprintf(
		"https://api.mapbox.com/styles/v1/mapbox/streets-v11/static/pin-s+ff0000(%f,%f)/%f,%f,%d/%dx%d?access_token=%s",
		lng, lat, lng, lat, zoom, width, height, accessToken)
}

// All returns the always-available links in rendering order.
func All(lat, lng float64) []Link {
	return []Link{
		{Name: "OpenStreetMap", URL: OpenStreetMap(lat, lng)},
		{Name: "Google Maps", URL: GoogleMaps(lat, lng)},
		{Name: "Bing Maps", URL: BingMaps(lat, lng)},
		{Name: "WikiMapia", URL: WikiMapia(lat, lng)},
	}
}
