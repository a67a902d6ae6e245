package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestScriptedReplaysThenGoesIdle(t *testing.T) {
	s := NewScripted("[Broadcast: hello]", "[Accept #1]")

	for i, want := range []string{"[Broadcast: hello]", "[Accept #1]", "", ""} {
		got, err := s.Act(context.Background(), "ignored")
		if err != nil {
			t.Fatalf("act %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("act %d = %q, want %q", i, got, want)
		}
	}
}

func TestHumanReadsOneLine(t *testing.T) {
	in := strings.NewReader("  [Broadcast: hi there]  \n[Whisper to Player 1: next turn]\n")
	var out strings.Builder
	h := NewHuman(in, &out)

	action, err := h.Act(context.Background(), "You are Player 0.")
	if err != nil {
		t.Fatalf("act failed: %v", err)
	}
	if action != "[Broadcast: hi there]" {
		t.Errorf("action = %q, want trimmed broadcast", action)
	}
	if !strings.Contains(out.String(), "You are Player 0.") {
		t.Error("observation was not shown to the human")
	}

	// A second act consumes the second line only.
	action, err = h.Act(context.Background(), "next")
	if err != nil {
		t.Fatalf("second act failed: %v", err)
	}
	if action != "[Whisper to Player 1: next turn]" {
		t.Errorf("second action = %q", action)
	}
}

func TestOpenRouterActParsesChoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test/model" {
			t.Errorf("model = %q", req.Model)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  [Broadcast: let us trade]  "}},
			},
		})
	}))
	defer server.Close()

	a := &OpenRouter{
		model:      "test/model",
		apiKey:     "test-key",
		baseURL:    server.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}

	action, err := a.Act(context.Background(), "observation text")
	if err != nil {
		t.Fatalf("act failed: %v", err)
	}
	if action != "[Broadcast: let us trade]" {
		t.Errorf("action = %q", action)
	}
}

func TestOpenRouterActSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	a := &OpenRouter{
		model:      "test/model",
		apiKey:     "test-key",
		baseURL:    server.URL,
		httpClient: server.Client(),
	}

	_, err := a.Act(context.Background(), "observation")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error %q should mention the status code", err)
	}
}
