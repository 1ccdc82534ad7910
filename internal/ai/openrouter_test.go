package ai

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(upstream *httptest.Server) *OpenRouterClient {
	c := NewOpenRouterClient("sk-test", "test-model")
	c.baseURL = upstream.URL
	return c
}

func TestOpenRouterClient_Complete(t *testing.T) {
	var gotReq chatRequest
	var gotAuth, gotReferer, gotTitle string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("HTTP-Referer")
		gotTitle = r.Header.Get("X-Title")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "Halo! Monas ada di Jakarta Pusat."}}]}`))
	}))
	defer upstream.Close()

	c := newTestClient(upstream)

	reply, err := c.Complete(t.Context(), "dimana monas?", "", 0)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if reply != "Halo! Monas ada di Jakarta Pusat." {
		t.Errorf("reply = %q", reply)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReferer != refererHeader || gotTitle != titleHeader {
		t.Errorf("identification headers = %q, %q", gotReferer, gotTitle)
	}

	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.Temperature != 0.7 || gotReq.MaxTokens != 800 {
		t.Errorf("sampling params = %v, %v", gotReq.Temperature, gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "dimana monas?" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestOpenRouterClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantSub string
	}{
		{"http error", http.StatusTooManyRequests, `rate limited`, "status 429"},
		{"api error body", http.StatusOK, `{"error": {"message": "invalid model"}}`, "invalid model"},
		{"empty choices", http.StatusOK, `{"choices": []}`, "empty choices"},
		{"blank content", http.StatusOK, `{"choices": [{"message": {"content": ""}}]}`, "empty choices"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer upstream.Close()

			c := newTestClient(upstream)

			_, err := c.Complete(t.Context(), "dimana monas?", "", 0)
			if !errors.Is(err, ErrService) {
				t.Fatalf("error = %v, want ErrService", err)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error = %q, want substring %q", err, tt.wantSub)
			}
		})
	}
}
