package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mdp/qrterminal/v3"

	"cilok/internal/config"
	"cilok/internal/geo"
	"cilok/internal/maplink"
	"cilok/internal/resolve"
)

const promptLabel = "🍡 Cilok > "

var (
	cyan    = color.New(color.FgCyan)
	cyanB   = color.New(color.FgCyan, color.Bold)
	white   = color.New(color.FgWhite)
	whiteB  = color.New(color.FgWhite, color.Bold)
	gray    = color.New(color.FgHiBlack)
	yellow  = color.New(color.FgYellow)
	green   = color.New(color.FgGreen)
	blue    = color.New(color.FgBlue)
	magenta = color.New(color.FgMagenta)
	red     = color.New(color.FgRed)
)

// placeIcons picks a marker per category for the nearby list.
var placeIcons = map[string]string{
	"restaurant":  "🍽️",
	"food":        "🍽️",
	"cafe":        "☕",
	"hospital":    "🏥",
	"pharmacy":    "💊",
	"bank":        "🏦",
	"atm":         "💳",
	"school":      "🏫",
	"university":  "🎓",
	"hotel":       "🏨",
	"gas_station": "⛽",
	"fuel":        "⛽",
	"shopping":    "🛍️",
	"mall":        "🏬",
}

func placeIcon(categories []string) string {
	for _, c := range categories {
		if icon, ok := placeIcons[c]; ok {
			return icon
		}
	}
	return "📍"
}

// spin starts a spinner when the session is interactive and returns the
// stop function. Non-interactive sessions get a no-op.
func (s *Session) spin(message string) func() {
	if !s.deps.Interactive {
		return func() {}
	}
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(s.deps.Out))
	sp.Suffix = " " + message
	sp.Start()
	return sp.Stop
}

func (s *Session) clearScreen() {
	fmt.Fprint(s.deps.Out, "\033[2J\033[H")
}

func (s *Session) renderWelcome() {
	out := s.deps.Out
	cyanB.Fprintln(out, "\n🍡 CILOK")
	white.Fprintln(out, "AI Agent for Location Toolkit")
	fmt.Fprintln(out)
	gray.Fprintln(out, "Connected to:")
	switch s.deps.AIBackend {
	case config.AIBackendGemini:
		green.Fprintln(out, "✓ Google Gemini")
	default:
		green.Fprintln(out, "✓ OpenRouter AI")
	}
	if s.deps.Selection == geo.SelectionCommercial {
		green.Fprintln(out, "✓ Google Maps")
	} else {
		blue.Fprintln(out, "✓ OpenStreetMap")
		blue.Fprintln(out, "✓ Nominatim Geocoding")
	}
	fmt.Fprintln(out)
	yellow.Fprintln(out, `Type "help" for available commands`)
	fmt.Fprintln(out)
}

func (s *Session) renderHelp() {
	out := s.deps.Out
	cyanB.Fprintln(out, "\n🍡 CILOK COMMANDS")
	fmt.Fprintln(out)
	white.Fprintln(out, "Location Queries:")
	gray.Fprintln(out, `• "tampilkan detail lokasi [nama tempat]"`)
	gray.Fprintln(out, `• "koordinat dari [alamat]"`)
	gray.Fprintln(out, `• "dari [asal] ke [tujuan] berapa jam?"`)
	gray.Fprintln(out, `• "tempat makan terdekat dari [lokasi]"`)
	fmt.Fprintln(out)
	white.Fprintln(out, "System Commands:")
	gray.Fprintln(out, "• help - Show this help")
	gray.Fprintln(out, "• status - Show service status")
	gray.Fprintln(out, "• clear - Clear screen")
	gray.Fprintln(out, "• exit/quit - Exit Cilok")
	fmt.Fprintln(out)
}

func (s *Session) renderStatus() {
	out := s.deps.Out
	cyan.Fprintln(out, "\n🔧 SERVICE STATUS")
	gray.Fprintln(out, strings.Repeat("━", 40))

	switch s.deps.AIBackend {
	case config.AIBackendGemini:
		green.Fprint(out, "✓ Google Gemini")
	default:
		green.Fprint(out, "✓ OpenRouter AI")
	}
	gray.Fprintf(out, " (%s)\n", s.deps.Model)

	if s.deps.Selection == geo.SelectionCommercial {
		green.Fprint(out, "✓ Google Maps API")
		gray.Fprintln(out, " (Premium)")
	} else {
		yellow.Fprint(out, "○ Google Maps API")
		gray.Fprintln(out, " (Not configured)")
		blue.Fprint(out, "✓ OpenStreetMap")
		gray.Fprintln(out, " (Free)")
		blue.Fprint(out, "✓ Nominatim Geocoding")
		gray.Fprintln(out, " (Free)")
	}
	fmt.Fprintln(out)
}

func (s *Session) renderGoodbye() {
	yellow.Fprintln(s.deps.Out, "👋 Goodbye!")
}

func (s *Session) renderNarrative(narrative string) {
	white.Fprintln(s.deps.Out, narrative)
}

func (s *Session) renderSearchStart() {
	cyan.Fprintln(s.deps.Out, "\n🔍 Memulai pencarian lokasi intelligent...")
}

func (s *Session) renderError(err error) {
	red.Fprintln(s.deps.Out, "❌ "+err.Error())
}

func (s *Session) renderResolved(outcome *resolve.Outcome) {
	out := s.deps.Out
	green.Fprintf(out, "\n🎉 Berhasil ditemukan setelah %d percobaan!\n", outcome.Attempt)
	gray.Fprintf(out, "Search query: %q\n\n", outcome.MatchedQuery)
	white.Fprintln(out, outcome.Narrative)
	fmt.Fprintln(out)
}

func (s *Session) renderExhausted(outcome *resolve.Outcome) {
	out := s.deps.Out
	yellow.Fprintf(out, "\n🤔 Setelah %d percobaan, lokasi tidak ditemukan.\n\n", s.deps.Loop.MaxAttempts)
	white.Fprintln(out, outcome.Narrative)

	if len(outcome.Attempts) > 0 {
		gray.Fprintln(out, "\n📝 Riwayat pencarian:")
		for i, attempt := range outcome.Attempts {
			gray.Fprintf(out, "  %d. %q - %s\n", i+1, attempt.Query, attempt.Err)
		}
	}
	fmt.Fprintln(out)
}

func (s *Session) renderTravel(origin, destination string, originCoords, destCoords geo.Coordinates, distance, duration string) {
	out := s.deps.Out
	cyan.Fprintln(out, "\n🚗 INFORMASI PERJALANAN")
	gray.Fprintln(out, strings.Repeat("━", 40))
	whiteB.Fprintf(out, "%s → %s\n", origin, destination)
	yellow.Fprintf(out, "📏 Jarak: %s\n", distance)
	if duration != "" {
		green.Fprintf(out, "⏱️  Estimasi waktu: %s\n", duration)
	}

	gray.Fprintf(out, "\n📍 %s: %f, %f\n", origin, originCoords.Lat, originCoords.Lng)
	gray.Fprintf(out, "📍 %s: %f, %f\n", destination, destCoords.Lat, destCoords.Lng)

	magenta.Fprintln(out, "\n🔗 Link Navigasi:")
	blue.Fprintf(out, "• Google Maps: %s\n\n",
		maplink.GoogleRoute(originCoords.Lat, originCoords.Lng, destCoords.Lat, destCoords.Lng))
}

func (s *Session) renderPlace(ctx context.Context, place *geo.Place) {
	out := s.deps.Out
	cyan.Fprintln(out, "\n📍 DETAIL LOKASI")
	gray.Fprintln(out, strings.Repeat("━", 50))

	whiteB.Fprintf(out, "🏢 %s\n", place.Name)
	gray.Fprintf(out, "📮 %s\n", place.FormattedAddress)

	if place.Coordinates != nil {
		yellow.Fprintf(out, "🎯 Koordinat: %f, %f\n", place.Coordinates.Lat, place.Coordinates.Lng)
	}
	if len(place.Categories) > 0 {
		blue.Fprintf(out, "🏷️  Kategori: %s\n", strings.Join(place.Categories, ", "))
	}
	if place.Rating > 0 {
		green.Fprintf(out, "%s Rating: %.1f/5\n", strings.Repeat("⭐", int(place.Rating)), place.Rating)
	}
	if place.Detail != nil {
		if place.Detail.Phone != "" {
			white.Fprintf(out, "📞 %s\n", place.Detail.Phone)
		}
		if place.Detail.Website != "" {
			white.Fprintf(out, "🌐 %s\n", place.Detail.Website)
		}
	}

	if len(place.Nearby) > 0 {
		green.Fprintln(out, "\n🏪 Tempat Terdekat:")
		for _, nearby := range place.Nearby {
			line := fmt.Sprintf("  %s %s", placeIcon(nearby.Categories), nearby.Name)
			if nearby.Distance != "" {
				line += fmt.Sprintf(" (%s)", nearby.Distance)
			}
			white.Fprintln(out, line)
		}
	}

	if place.Coordinates != nil {
		s.renderEnrichment(ctx, place.Coordinates.Lat, place.Coordinates.Lng)
		s.renderMapLinks(place.Coordinates.Lat, place.Coordinates.Lng)
	}
	fmt.Fprintln(out)
}

// renderEnrichment prints weather and elevation when the free services
// answer in time; silence otherwise.
func (s *Session) renderEnrichment(ctx context.Context, lat, lng float64) {
	if s.deps.Extras == nil {
		return
	}
	out := s.deps.Out
	if w := s.deps.Extras.Weather(ctx, lat, lng); w != nil {
		cyan.Fprintf(out, "\n🌤️  Cuaca saat ini: %.1f°C, angin %.1f km/jam\n", w.Temperature, w.Windspeed)
	}
	if e := s.deps.Extras.Elevation(ctx, lat, lng); e != nil {
		cyan.Fprintf(out, "⛰️  Ketinggian: %.0f mdpl\n", *e)
	}
}

func (s *Session) renderMapLinks(lat, lng float64) {
	out := s.deps.Out
	magenta.Fprintln(out, "\n🗺️ Akses Cepat:")
	for _, link := range maplink.All(lat, lng) {
		blue.Fprintf(out, "• %s: %s\n", link.Name, link.URL)
	}
	if u := maplink.MapboxStatic(s.deps.MapboxKey, lat, lng, 15, 400, 300); u != "" {
		magenta.Fprintf(out, "• Mapbox: %s\n", u)
	}

	if s.deps.Interactive {
		white.Fprintln(out, "\n📱 QR Code (Google Maps):")
		qrterminal.GenerateWithConfig(maplink.GoogleMaps(lat, lng), qrterminal.Config{
			Level:      qrterminal.L,
			Writer:     out,
			HalfBlocks: true,
			QuietZone:  1,
		})
	}
}
