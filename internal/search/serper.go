package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/claimlens/claimlens/internal/model"
)

const (
	serperEndpoint   = "https://google.serper.dev/search"
	searchMaxRetries = 3
)

// searchSleepFunc is the sleep function used between retries (injectable for tests)
var searchSleepFunc = time.Sleep

// Serper queries the Serper.dev Google search API
type Serper struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	numResults int
}

// NewSerper creates a Serper client
func NewSerper(cfg model.SearchConfig) *Serper {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}
	maxEv := cfg.MaxEvidencePerClaim
	if maxEv <= 0 {
		maxEv = 5
	}

	return &Serper{
		apiKey:     cfg.SerperAPIKey,
		endpoint:   serperEndpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		// Request double the evidence cap so credibility filtering has headroom
		numResults: maxEv * 2,
	}
}

// Name returns the provider name
func (s *Serper) Name() string { return "serper" }

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Date    string `json:"date,omitempty"`
	} `json:"organic"`
}

// Search queries Serper, retrying 429/5xx with exponential backoff.
// Zero results is a valid response, not an error.
func (s *Serper) Search(ctx context.Context, query string) ([]model.RawSearchHit, error) {
	if query == "" {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(serperRequest{Q: query, Num: s.numResults})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < searchMaxRetries; attempt++ {
		if attempt > 0 {
			searchSleepFunc(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		hits, retryable, err := s.doRequest(ctx, payload)
		if err == nil {
			return hits, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, fmt.Errorf("serper search: %w", lastErr)
}

func (s *Serper) doRequest(ctx context.Context, payload []byte) ([]model.RawSearchHit, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}

	var parsed serperResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}

	hits := make([]model.RawSearchHit, 0, len(parsed.Organic))
	for _, item := range parsed.Organic {
		if item.Link == "" || item.Snippet == "" {
			continue
		}
		hits = append(hits, model.RawSearchHit{
			URL:         item.Link,
			Title:       item.Title,
			Snippet:     item.Snippet,
			PublishDate: parseHitDate(item.Date),
		})
	}
	return hits, false, nil
}

// parseHitDate tries common search-API date formats; nil when unparseable
func parseHitDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "Jan 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
