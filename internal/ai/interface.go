// Package ai wraps the chat-completion services used to interpret
// location queries and to reformulate failed searches.
package ai

import (
	"context"
	"errors"
)

// ErrService marks any completion failure: transport errors, non-2xx
// responses and unusable response payloads all wrap it.
var ErrService = errors.New("ai: service error")

// Completer is the contract the resolution loop drives. attempt is
// zero-based: attempt 0 produces a normal conversational answer, later
// attempts receive the accumulated failure context and are instructed to
// widen the search strategy. priorContext may be empty on the first
// attempt.
//
// Callers must not assume anything about the reply beyond non-empty text.
type Completer interface {
	Complete(ctx context.Context, query, priorContext string, attempt int) (string, error)
}
