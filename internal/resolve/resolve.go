// Package resolve implements the AI-assisted iterative location
// resolution loop: a bounded state machine that turns a free-text query
// into candidate search strings, tries them against a geocoding backend,
// and feeds accumulated failures back into the language model to produce
// better strings on the next attempt.
package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"cilok/internal/ai"
	"cilok/internal/geo"
)

// DefaultMaxAttempts bounds the outer AI-reformulation iterations.
const DefaultMaxAttempts = 3

// SearchAttempt records one failed candidate lookup. The accumulated
// sequence doubles as user-facing history and as feedback context for the
// next AI prompt.
type SearchAttempt struct {
	Query string `json:"query"`
	Err   string `json:"error"`
}

// Outcome is the loop's sole result. Resolved carries the place and the
// attempt that produced it; otherwise Narrative holds the final
// alternative-suggestions reply and Attempts the full failure history.
type Outcome struct {
	Resolved     bool            `json:"resolved"`
	Place        *geo.Place      `json:"place,omitempty"`
	Narrative    string          `json:"narrative"`
	Attempt      int             `json:"attempt,omitempty"`
	MatchedQuery string          `json:"matched_query,omitempty"`
	Attempts     []SearchAttempt `json:"attempts,omitempty"`
}

// Loop drives a Completer and a geo Provider through bounded retries.
// All steps are strictly sequential so the failure context stays causally
// ordered for the next prompt.
type Loop struct {
	AI          ai.Completer
	Geo         geo.Provider
	MaxAttempts int
	Logger      *slog.Logger
}

// New creates a Loop with the default attempt bound.
func New(completer ai.Completer, provider geo.Provider, logger *slog.Logger) *Loop {
	return &Loop{
		AI:          completer,
		Geo:         provider,
		MaxAttempts: DefaultMaxAttempts,
		Logger:      logger,
	}
}

// Resolve runs the loop for one query.
//
// Per iteration: ask the AI for a narrative (with the failure context
// accumulated so far), derive candidate search strings from it, and try
// each in order. The first candidate that geocodes ends the loop
// immediately; every failure is appended to the history. An AI failure
// skips the iteration's candidates but still consumes the attempt. After
// the last iteration one final AI call always runs to produce alternative
// suggestions; its failure is the only error this method surfaces.
func (l *Loop) Resolve(ctx context.Context, query string) (*Outcome, error) {
	var history []SearchAttempt
	var lastFailure string

	for attempt := 1; attempt <= l.MaxAttempts; attempt++ {
		l.Logger.Debug("resolution attempt", "attempt", attempt, "max", l.MaxAttempts)

		narrative, err := l.AI.Complete(ctx, query, failureContext(lastFailure, history), attempt-1)
		if err != nil {
			l.Logger.Debug("ai call failed", "attempt", attempt, "error", err)
			lastFailure = err.Error()
			continue
		}

		candidates := ExtractCandidates(narrative, query)
		l.Logger.Debug("trying candidates", "attempt", attempt, "candidates", candidates)

		for _, candidate := range candidates {
			place, err := l.Geo.ForwardSearch(ctx, candidate)
			if err != nil {
				history = append(history, SearchAttempt{Query: candidate, Err: err.Error()})
				continue
			}
			return &Outcome{
				Resolved:     true,
				Place:        place,
				Narrative:    narrative,
				Attempt:      attempt,
				MatchedQuery: candidate,
				Attempts:     history,
			}, nil
		}

		lastFailure = "no results found for suggestions: " + strings.Join(candidates, ", ")
	}

	// Exhausted. One unconditional final call for alternative suggestions;
	// there is no fallback narrative, so its failure propagates.
	finalQuery := fmt.Sprintf(
		"%s - Tidak ditemukan setelah %d percobaan. Berikan saran alternatif atau lokasi serupa.",
		query, l.MaxAttempts,
	)
	narrative, err := l.AI.Complete(ctx, finalQuery, historyContext(history), l.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("resolve: final suggestion call: %w", err)
	}

	return &Outcome{
		Resolved:  false,
		Narrative: narrative,
		Attempts:  history,
	}, nil
}

// failureContext builds the prior-context string for the next AI prompt.
// Empty on the first attempt.
func failureContext(lastFailure string, history []SearchAttempt) string {
	if lastFailure == "" {
		return ""
	}
	raw, err := json.Marshal(history)
	if err != nil {
		raw = []byte("[]")
	}
	return fmt.Sprintf("Previous error: %s. Results so far: %s", lastFailure, raw)
}

func historyContext(history []SearchAttempt) string {
	raw, err := json.Marshal(history)
	if err != nil {
		raw = []byte("[]")
	}
	return "Search attempts: " + string(raw)
}
