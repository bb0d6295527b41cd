package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

func fastSearchClient(t *testing.T) func() {
	t.Helper()
	orig := searchSleepFunc
	searchSleepFunc = func(time.Duration) {}
	return func() { searchSleepFunc = orig }
}

func searchConfig() model.SearchConfig {
	return model.SearchConfig{
		SerperAPIKey:        "test-key",
		TavilyAPIKey:        "test-key",
		Timeout:             5 * time.Second,
		MaxEvidencePerClaim: 5,
		RequestsPerSecond:   100,
		Burst:               100,
	}
}

func TestSerper_Search(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		w.Write([]byte(`{"organic": [
			{"link": "https://example.com/a", "title": "A", "snippet": "first result", "date": "2023-11-19"},
			{"link": "https://example.com/b", "title": "B", "snippet": "second result"},
			{"link": "", "title": "dropped", "snippet": "no link"}
		]}`))
	}))
	defer server.Close()

	s := NewSerper(searchConfig())
	s.endpoint = server.URL

	hits, err := s.Search(context.Background(), "test query")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "test-key" {
		t.Errorf("expected API key header, got %q", gotKey)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits (linkless dropped), got %d", len(hits))
	}
	if hits[0].URL != "https://example.com/a" || hits[0].Snippet != "first result" {
		t.Errorf("unexpected first hit: %+v", hits[0])
	}
	if hits[0].PublishDate == nil {
		t.Error("expected publish date to be parsed")
	}
	if hits[1].PublishDate != nil {
		t.Error("expected nil publish date when absent")
	}
}

func TestSerper_EmptyQuery(t *testing.T) {
	s := NewSerper(searchConfig())
	hits, err := s.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits != nil {
		t.Errorf("expected nil hits for empty query, got %v", hits)
	}
}

func TestSerper_RetryOn500(t *testing.T) {
	defer fastSearchClient(t)()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"organic": [{"link": "https://example.com", "title": "T", "snippet": "ok"}]}`))
	}))
	defer server.Close()

	s := NewSerper(searchConfig())
	s.endpoint = server.URL

	hits, err := s.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("expected recovery after retries: %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if len(hits) != 1 {
		t.Errorf("expected 1 hit, got %d", len(hits))
	}
}

func TestSerper_NoRetryOn401(t *testing.T) {
	defer fastSearchClient(t)()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	s := NewSerper(searchConfig())
	s.endpoint = server.URL

	if _, err := s.Search(context.Background(), "q"); err == nil {
		t.Fatal("expected error for 401")
	}
	if attempts != 1 {
		t.Errorf("expected no retry on 401, got %d attempts", attempts)
	}
}

func TestSerper_ExhaustsRetries(t *testing.T) {
	defer fastSearchClient(t)()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := NewSerper(searchConfig())
	s.endpoint = server.URL

	if _, err := s.Search(context.Background(), "q"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != searchMaxRetries {
		t.Errorf("expected %d attempts, got %d", searchMaxRetries, attempts)
	}
}

func TestTavily_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [
			{"url": "https://example.org/x", "title": "X", "content": "tavily snippet", "published_date": "2024-01-15"},
			{"url": "https://example.org/y", "title": "Y", "content": ""}
		]}`))
	}))
	defer server.Close()

	tv := NewTavily(searchConfig())
	tv.endpoint = server.URL

	hits, err := tv.Search(context.Background(), "test query")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit (contentless dropped), got %d", len(hits))
	}
	if hits[0].URL != "https://example.org/x" || hits[0].Snippet != "tavily snippet" {
		t.Errorf("unexpected hit: %+v", hits[0])
	}
	if hits[0].PublishDate == nil {
		t.Error("expected publish date to be parsed")
	}
}

func TestTavily_RetryOn503(t *testing.T) {
	defer fastSearchClient(t)()

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"results": [{"url": "https://example.org", "title": "T", "content": "ok"}]}`))
	}))
	defer server.Close()

	tv := NewTavily(searchConfig())
	tv.endpoint = server.URL

	hits, err := tv.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("expected recovery after retry: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected 1 hit, got %d", len(hits))
	}
}

func TestParseHitDate(t *testing.T) {
	tests := []struct {
		input  string
		parsed bool
	}{
		{"2023-11-19", true},
		{"2023-11-19T10:30:00Z", true},
		{"Nov 19, 2023", true},
		{"yesterday", false},
		{"", false},
	}

	for _, tt := range tests {
		got := parseHitDate(tt.input)
		if (got != nil) != tt.parsed {
			t.Errorf("parseHitDate(%q): parsed=%v, want %v", tt.input, got != nil, tt.parsed)
		}
	}
}
