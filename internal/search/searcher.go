package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Searcher is the external evidence-search collaborator. Implementations
// must return an empty slice, not an error, when a query has no results.
type Searcher interface {
	// Name identifies the backing provider
	Name() string

	// Search returns raw web hits for the query
	Search(ctx context.Context, query string) ([]model.RawSearchHit, error)
}

// New builds the configured searcher, wrapped with response caching when a
// cache is supplied.
func New(cfg model.SearchConfig) (Searcher, error) {
	switch strings.ToLower(cfg.Provider) {
	case "serper":
		if cfg.SerperAPIKey == "" {
			return nil, fmt.Errorf("serper: API key is required (set CLAIMLENS_SEARCH_SERPER_API_KEY)")
		}
		return NewSerper(cfg), nil

	case "tavily":
		if cfg.TavilyAPIKey == "" {
			return nil, fmt.Errorf("tavily: API key is required (set CLAIMLENS_SEARCH_TAVILY_API_KEY)")
		}
		return NewTavily(cfg), nil

	case "mock", "offline":
		return NewMock(), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s (supported: serper, tavily, mock)", cfg.Provider)
	}
}
