package openrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if c := NewClient(Config{APIKey: "  "}); c != nil {
		t.Fatal("expected nil client without api key")
	}
	if c := NewClient(Config{APIKey: "key", BaseURL: "https://example.com/v1/"}); c == nil {
		t.Fatal("expected client")
	}
}

func TestConfigNewRequiresModel(t *testing.T) {
	t.Parallel()

	cfg := &Config{APIKey: "key"}
	if _, err := cfg.New(context.Background()); err == nil {
		t.Fatal("expected error without model")
	}
}

func TestHeaderTransportSetsAttribution(t *testing.T) {
	t.Parallel()

	var referer, title string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		referer = r.Header.Get("HTTP-Referer")
		title = r.Header.Get("X-Title")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	cfg := &Config{SiteURL: "https://statlingua.dev", SiteName: "statlingua"}
	resp, err := cfg.httpClient().Get(server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp.Body.Close()

	if referer != "https://statlingua.dev" {
		t.Fatalf("HTTP-Referer = %q", referer)
	}
	if title != "statlingua" {
		t.Fatalf("X-Title = %q", title)
	}
}

func TestExtraFieldsReasoningExclusion(t *testing.T) {
	t.Parallel()

	cfg := &Config{ExtraFields: map[string]any{"seed": 7}}
	extra := cfg.extraFields("x-ai/grok-4.1-fast")
	if extra["seed"] != 7 {
		t.Fatalf("caller fields dropped: %#v", extra)
	}
	if _, ok := extra["reasoning"]; !ok {
		t.Fatalf("expected reasoning exclusion: %#v", extra)
	}
	if _, ok := cfg.ExtraFields["reasoning"]; ok {
		t.Fatal("config extra fields must not be mutated")
	}

	if extra := (&Config{}).extraFields("openai/gpt-4o"); len(extra) != 0 {
		t.Fatalf("unexpected extra fields: %#v", extra)
	}

	own := &Config{ExtraFields: map[string]any{"reasoning": "keep"}}
	if got := own.extraFields("x-ai/grok-4.1-fast")["reasoning"]; got != "keep" {
		t.Fatalf("caller reasoning overridden: %#v", got)
	}
}
