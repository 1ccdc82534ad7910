package resolve

import (
	"regexp"
	"strings"
)

// maxCandidates caps how many search strings one narrative may yield.
const maxCandidates = 5

var (
	quotedPhrase = regexp.MustCompile(`"([^"]+)"`)

	// Substrings following a search trigger word, up to the next
	// punctuation break.
	triggerPhrases = []*regexp.Regexp{
		regexp.MustCompile(`(?i)mencari\s+([^.,:\n]+)`),
		regexp.MustCompile(`(?i)lokasi\s+([^.,:\n]+)`),
		regexp.MustCompile(`(?i)tempat\s+([^.,:\n]+)`),
	}

	// Runs of capitalized words. Deliberately permissive: a false
	// candidate costs one failed lookup, a missed one costs the whole
	// resolution.
	capitalizedRun = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
)

// ExtractCandidates derives the ordered search strings to try for one
// narrative: the original query first, then quoted phrases, then
// trigger-word captures and capitalized-word runs. Candidates are deduped
// case-sensitively in first-seen order, must be longer than two
// characters, and are capped at five.
func ExtractCandidates(narrative, originalQuery string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(s string) {
		s = strings.TrimSpace(s)
		if len(s) <= 2 || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	add(originalQuery)

	for _, m := range quotedPhrase.FindAllStringSubmatch(narrative, -1) {
		add(m[1])
	}

	for _, pattern := range triggerPhrases {
		for _, m := range pattern.FindAllStringSubmatch(narrative, -1) {
			add(m[1])
		}
	}

	for _, m := range capitalizedRun.FindAllString(narrative, -1) {
		add(m)
	}

	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}
