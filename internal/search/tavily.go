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

const tavilyEndpoint = "https://api.tavily.com/search"

// Tavily queries the Tavily search API
type Tavily struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxResults int
}

// NewTavily creates a Tavily client
func NewTavily(cfg model.SearchConfig) *Tavily {
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

	return &Tavily{
		apiKey:     cfg.TavilyAPIKey,
		endpoint:   tavilyEndpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		maxResults: maxEv * 2,
	}
}

// Name returns the provider name
func (t *Tavily) Name() string { return "tavily" }

type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	SearchDepth       string `json:"search_depth"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type tavilyResponse struct {
	Results []struct {
		URL           string `json:"url"`
		Title         string `json:"title"`
		Content       string `json:"content"`
		PublishedDate string `json:"published_date,omitempty"`
	} `json:"results"`
}

// Search queries Tavily with the same retry policy as the Serper client
func (t *Tavily) Search(ctx context.Context, query string) ([]model.RawSearchHit, error) {
	if query == "" {
		return nil, nil
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(tavilyRequest{
		APIKey:      t.apiKey,
		Query:       query,
		MaxResults:  t.maxResults,
		SearchDepth: "basic",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < searchMaxRetries; attempt++ {
		if attempt > 0 {
			searchSleepFunc(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		hits, retryable, err := t.doRequest(ctx, payload)
		if err == nil {
			return hits, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return nil, fmt.Errorf("tavily search: %w", lastErr)
}

func (t *Tavily) doRequest(ctx context.Context, payload []byte) ([]model.RawSearchHit, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
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

	var parsed tavilyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}

	hits := make([]model.RawSearchHit, 0, len(parsed.Results))
	for _, item := range parsed.Results {
		if item.URL == "" || item.Content == "" {
			continue
		}
		hits = append(hits, model.RawSearchHit{
			URL:         item.URL,
			Title:       item.Title,
			Snippet:     item.Content,
			PublishDate: parseHitDate(item.PublishedDate),
		})
	}
	return hits, false, nil
}
