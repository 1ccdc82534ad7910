// Package session runs the interactive read-eval loop: one free-text
// line per turn, classified and dispatched, with the result rendered to
// the terminal. One query runs to completion before the next line is
// read; a failed query is reported and the session continues.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cilok/internal/ai"
	"cilok/internal/classify"
	"cilok/internal/config"
	"cilok/internal/freemaps"
	"cilok/internal/geo"
	"cilok/internal/resolve"
)

// Deps carries the already-wired collaborators. The session never reads
// configuration itself.
type Deps struct {
	AI        ai.Completer
	Geo       geo.Provider
	Loop      *resolve.Loop
	Extras    *freemaps.Client
	Selection geo.Selection
	AIBackend config.AIBackend
	Model     string
	MapboxKey string

	In  io.Reader
	Out io.Writer
	// Interactive enables spinners and QR codes; tests leave it off.
	Interactive bool
	Logger      *slog.Logger
}

type Session struct {
	deps    Deps
	scanner *bufio.Scanner
	running bool
}

func New(deps Deps) *Session {
	return &Session{
		deps:    deps,
		scanner: bufio.NewScanner(deps.In),
	}
}

// Run starts the loop and returns when the user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	s.running = true
	s.renderWelcome()

	for s.running {
		fmt.Fprint(s.deps.Out, promptLabel)
		if !s.scanner.Scan() {
			break
		}
		query := strings.TrimSpace(s.scanner.Text())
		if query == "" {
			continue
		}
		s.Process(ctx, query)
	}
	return s.scanner.Err()
}

// Process handles one line. Control commands bypass everything else;
// travel-time intent is checked before nearby intent before the general
// AI conversation.
func (s *Session) Process(ctx context.Context, query string) {
	switch strings.ToLower(query) {
	case "exit", "quit":
		s.renderGoodbye()
		s.running = false
		return
	case "help":
		s.renderHelp()
		return
	case "clear":
		s.clearScreen()
		s.renderWelcome()
		return
	case "status":
		s.renderStatus()
		return
	}

	if classify.IsTravelTimeQuery(query) {
		s.handleTravelTime(ctx, query)
		return
	}
	if classify.IsNearbyQuery(query) {
		s.handleNearby(ctx, query)
		return
	}
	s.handleGeneral(ctx, query)
}

// handleTravelTime geocodes both endpoints and renders the haversine
// distance with the coarse duration estimate. Anything unextractable or
// ungeocodable falls back to a plain AI answer.
func (s *Session) handleTravelTime(ctx context.Context, query string) {
	origin, destination := classify.ExtractTravelLocations(query)
	if origin == "" || destination == "" {
		s.deps.Logger.Debug("no travel endpoints extracted", "query", query)
		s.aiFallback(ctx, query)
		return
	}

	stop := s.spin("Menghitung rute dan waktu tempuh...")
	originCoords, _, err := s.deps.Geo.Geocode(ctx, origin)
	if err != nil {
		stop()
		s.deps.Logger.Debug("origin geocode failed", "origin", origin, "error", err)
		s.aiFallback(ctx, query)
		return
	}
	destCoords, _, err := s.deps.Geo.Geocode(ctx, destination)
	stop()
	if err != nil {
		s.deps.Logger.Debug("destination geocode failed", "destination", destination, "error", err)
		s.aiFallback(ctx, query)
		return
	}

	distance := geo.Distance(originCoords.Lat, originCoords.Lng, destCoords.Lat, destCoords.Lng)
	duration := geo.EstimateDuration(distance)
	s.renderTravel(origin, destination, originCoords, destCoords, distance, duration)
}

// handleNearby resolves the query through the loop and renders the place
// with its nearby list.
func (s *Session) handleNearby(ctx context.Context, query string) {
	stop := s.spin("AI sedang menganalisis permintaan...")
	outcome, err := s.deps.Loop.Resolve(ctx, query)
	stop()
	if err != nil {
		s.renderError(err)
		return
	}
	s.renderOutcome(ctx, outcome)
}

// handleGeneral answers conversationally first, then runs the resolution
// loop when the narrative itself reads like a location search.
func (s *Session) handleGeneral(ctx context.Context, query string) {
	stop := s.spin("AI sedang berpikir...")
	narrative, err := s.deps.AI.Complete(ctx, query, "", 0)
	stop()
	if err != nil {
		s.renderError(err)
		return
	}
	s.renderNarrative(narrative)

	if !classify.IsLocationQuery(narrative) {
		return
	}

	s.renderSearchStart()
	stop = s.spin("AI sedang berpikir keras mencari lokasi...")
	outcome, err := s.deps.Loop.Resolve(ctx, query)
	stop()
	if err != nil {
		s.renderError(err)
		return
	}
	s.renderOutcome(ctx, outcome)
}

func (s *Session) renderOutcome(ctx context.Context, outcome *resolve.Outcome) {
	if outcome.Resolved {
		s.renderResolved(outcome)
		s.renderPlace(ctx, outcome.Place)
		return
	}
	s.renderExhausted(outcome)
}

// aiFallback answers with a plain first-attempt completion.
func (s *Session) aiFallback(ctx context.Context, query string) {
	stop := s.spin("AI sedang berpikir...")
	narrative, err := s.deps.AI.Complete(ctx, query, "", 0)
	stop()
	if err != nil {
		s.renderError(err)
		return
	}
	s.renderNarrative(narrative)
}
