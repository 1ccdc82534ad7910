package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"cilok/internal/geo"
)

type stubCompleter struct {
	replies []string
	err     error
	calls   []stubCall
}

type stubCall struct {
	query        string
	priorContext string
	attempt      int
}

func (s *stubCompleter) Complete(_ context.Context, query, priorContext string, attempt int) (string, error) {
	s.calls = append(s.calls, stubCall{query, priorContext, attempt})
	if s.err != nil {
		return "", s.err
	}
	i := len(s.calls) - 1
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	return s.replies[i], nil
}

// stubProvider fails every lookup except the queries listed in resolves.
type stubProvider struct {
	resolves map[string]*geo.Place
	searches []string
}

func (s *stubProvider) ForwardSearch(_ context.Context, text string) (*geo.Place, error) {
	s.searches = append(s.searches, text)
	if place, ok := s.resolves[text]; ok {
		return place, nil
	}
	return nil, fmt.Errorf("%w: %q", geo.ErrNotFound, text)
}

func (s *stubProvider) Geocode(context.Context, string) (geo.Coordinates, string, error) {
	return geo.Coordinates{}, "", geo.ErrNotFound
}

func (s *stubProvider) ReverseGeocode(context.Context, float64, float64) (*geo.Place, error) {
	return nil, geo.ErrNotFound
}

func (s *stubProvider) NearbySearch(context.Context, float64, float64, string) ([]geo.Place, error) {
	return nil, geo.ErrNotFound
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoop_Resolve_FirstCandidateWins(t *testing.T) {
	place := &geo.Place{Name: "Monumen Nasional"}
	completer := &stubCompleter{replies: []string{`Coba cari "Monumen Nasional" di Jakarta`}}
	provider := &stubProvider{resolves: map[string]*geo.Place{"monas": place}}

	loop := New(completer, provider, discardLogger())
	outcome, err := loop.Resolve(t.Context(), "monas")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if !outcome.Resolved {
		t.Fatal("outcome not resolved")
	}
	if outcome.Place != place {
		t.Errorf("Place = %+v", outcome.Place)
	}
	if outcome.Attempt != 1 {
		t.Errorf("Attempt = %d, want 1", outcome.Attempt)
	}
	if outcome.MatchedQuery != "monas" {
		t.Errorf("MatchedQuery = %q, want the original query", outcome.MatchedQuery)
	}
	if len(outcome.Attempts) != 0 {
		t.Errorf("Attempts = %v, want none", outcome.Attempts)
	}
	if len(completer.calls) != 1 {
		t.Errorf("AI calls = %d, want 1", len(completer.calls))
	}
	// The winning candidate short-circuits the rest of the list.
	if len(provider.searches) != 1 {
		t.Errorf("searches = %v, want only the original query", provider.searches)
	}
}

func TestLoop_Resolve_LaterCandidateWins(t *testing.T) {
	place := &geo.Place{Name: "Monumen Nasional"}
	completer := &stubCompleter{replies: []string{`Mungkin maksud Anda "Monumen Nasional"`}}
	provider := &stubProvider{resolves: map[string]*geo.Place{"Monumen Nasional": place}}

	loop := New(completer, provider, discardLogger())
	outcome, err := loop.Resolve(t.Context(), "tugu jakarta")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if !outcome.Resolved {
		t.Fatal("outcome not resolved")
	}
	if outcome.MatchedQuery != "Monumen Nasional" {
		t.Errorf("MatchedQuery = %q", outcome.MatchedQuery)
	}
	// The failed first candidate stays in the history.
	if len(outcome.Attempts) != 1 || outcome.Attempts[0].Query != "tugu jakarta" {
		t.Errorf("Attempts = %+v", outcome.Attempts)
	}
}

func TestLoop_Resolve_Exhaustion(t *testing.T) {
	completer := &stubCompleter{replies: []string{
		"Coba cari Lokasi Pertama",
		"Coba cari Lokasi Kedua",
		"Coba cari Lokasi Ketiga",
		"Tidak ketemu. Mungkin maksud Anda tempat lain di Jakarta.",
	}}
	provider := &stubProvider{}

	loop := New(completer, provider, discardLogger())
	outcome, err := loop.Resolve(t.Context(), "tempat yang tidak ada")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if outcome.Resolved {
		t.Fatal("outcome resolved, want exhaustion")
	}
	if outcome.Narrative != "Tidak ketemu. Mungkin maksud Anda tempat lain di Jakarta." {
		t.Errorf("Narrative = %q, want the final suggestion reply", outcome.Narrative)
	}
	// Three loop iterations plus the unconditional final call.
	if len(completer.calls) != DefaultMaxAttempts+1 {
		t.Fatalf("AI calls = %d, want %d", len(completer.calls), DefaultMaxAttempts+1)
	}
	if len(outcome.Attempts) == 0 {
		t.Error("Attempts is empty, want full failure history")
	}

	final := completer.calls[len(completer.calls)-1]
	if !strings.Contains(final.query, "Tidak ditemukan setelah 3 percobaan") {
		t.Errorf("final query = %q", final.query)
	}
	if !strings.HasPrefix(final.priorContext, "Search attempts: ") {
		t.Errorf("final context = %q", final.priorContext)
	}
	if final.attempt != DefaultMaxAttempts {
		t.Errorf("final attempt marker = %d, want %d", final.attempt, DefaultMaxAttempts)
	}

	// Retry prompts carry the accumulated failure context.
	second := completer.calls[1]
	if !strings.HasPrefix(second.priorContext, "Previous error: ") {
		t.Errorf("second context = %q", second.priorContext)
	}
}

func TestLoop_Resolve_AIFailureConsumesAttempt(t *testing.T) {
	completer := &stubCompleter{err: errors.New("upstream down")}
	provider := &stubProvider{}

	loop := New(completer, provider, discardLogger())
	_, err := loop.Resolve(t.Context(), "monas")
	if err == nil {
		t.Fatal("Resolve() error = nil, want final suggestion failure")
	}
	// Each iteration retries the AI once, then the final call fails too.
	if len(completer.calls) != DefaultMaxAttempts+1 {
		t.Errorf("AI calls = %d, want %d", len(completer.calls), DefaultMaxAttempts+1)
	}
	if len(provider.searches) != 0 {
		t.Errorf("searches = %v, want none when the AI never answers", provider.searches)
	}
}
