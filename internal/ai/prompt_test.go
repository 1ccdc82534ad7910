package ai

import (
	"strings"
	"testing"
)

func TestSystemPrompt_FirstAttempt(t *testing.T) {
	prompt := systemPrompt(0, "")
	if !strings.Contains(prompt, "Respond naturally in Indonesian") {
		t.Errorf("first-attempt prompt missing language instruction: %q", prompt)
	}
	if strings.Contains(prompt, "retry attempt") {
		t.Error("first-attempt prompt must not mention retries")
	}
}

func TestSystemPrompt_Retry(t *testing.T) {
	prompt := systemPrompt(2, "Previous error: not found")
	if !strings.Contains(prompt, "retry attempt 2/3") {
		t.Errorf("retry prompt missing attempt counter: %q", prompt)
	}
	if !strings.Contains(prompt, "Previous error: not found") {
		t.Errorf("retry prompt missing prior context: %q", prompt)
	}
}

func TestSystemPrompt_RetryDefaultContext(t *testing.T) {
	prompt := systemPrompt(1, "")
	if !strings.Contains(prompt, "Location not found") {
		t.Errorf("retry prompt missing default context: %q", prompt)
	}
}
