package search

import (
	"context"
	"sort"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Mock serves deterministic fixture results for offline runs and tests.
// Queries match fixture keys by substring; unmatched queries get a generic
// low-credibility result.
type Mock struct {
	fixtures map[string][]model.RawSearchHit
}

// NewMock creates a mock searcher with the built-in fixture set
func NewMock() *Mock {
	return &Mock{fixtures: defaultFixtures()}
}

// Name returns the provider name
func (m *Mock) Name() string { return "mock" }

// Search returns fixture hits whose key appears in the query. Keys are
// checked in sorted order so repeated runs are reproducible.
func (m *Mock) Search(_ context.Context, query string) ([]model.RawSearchHit, error) {
	lower := strings.ToLower(query)

	keys := make([]string, 0, len(m.fixtures))
	for key := range m.fixtures {
		if key != "default" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.Contains(lower, key) {
			return m.fixtures[key], nil
		}
	}
	return m.fixtures["default"], nil
}

// Add registers extra fixture hits under a lowercase key (test helper)
func (m *Mock) Add(key string, hits []model.RawSearchHit) {
	m.fixtures[strings.ToLower(key)] = hits
}

func defaultFixtures() map[string][]model.RawSearchHit {
	return map[string][]model.RawSearchHit{
		"cricket world cup": {
			{
				URL:     "https://en.wikipedia.org/wiki/2023_Cricket_World_Cup",
				Title:   "ICC Cricket World Cup 2023 - Wikipedia",
				Snippet: "The 2023 ICC Cricket World Cup was won by Australia, who defeated India in the final. India finished as runners-up in the tournament held in India.",
			},
			{
				URL:     "https://www.espn.com/cricket/story/2023-world-cup-final",
				Title:   "Australia wins 2023 Cricket World Cup - ESPN",
				Snippet: "Australia defeated India by 6 wickets in the final to win their 6th Cricket World Cup title.",
			},
			{
				URL:     "https://www.bbc.com/sport/cricket/world-cup-2023",
				Title:   "Cricket World Cup 2023 Final Result - BBC Sport",
				Snippet: "Australia beat India in the 2023 Cricket World Cup final in Ahmedabad. Travis Head scored a century to guide Australia to victory.",
			},
		},
		"coffee cures cancer": {
			{
				URL:     "https://www.snopes.com/fact-check/coffee-cure-cancer/",
				Title:   "Does Coffee Cure Cancer? Fact Check - Snopes",
				Snippet: "FALSE: There is no scientific evidence that drinking coffee cures cancer. While coffee has health benefits, it is not a cancer cure.",
			},
			{
				URL:     "https://www.mayoclinic.org/coffee-cancer",
				Title:   "Coffee and Cancer: What the Research Says - Mayo Clinic",
				Snippet: "Coffee consumption may have some protective effects against certain cancers, but it does not cure cancer. Claims of coffee curing cancer are false.",
			},
		},
		"vaccination rates": {
			{
				URL:     "https://www.who.int/news/vaccination-coverage-2023",
				Title:   "Global Vaccination Coverage - WHO",
				Snippet: "WHO reports global vaccination coverage has increased significantly in 2023, with over 70% of the global population receiving at least one dose.",
			},
			{
				URL:     "https://www.reuters.com/health/covid-vaccination-2023",
				Title:   "COVID-19 Vaccination Progress - Reuters",
				Snippet: "World Health Organization data shows vaccination rates have risen in developing countries, contributing to a decline in cases globally.",
			},
		},
		"crime rates": {
			{
				URL:     "https://www.fbi.gov/crime-statistics",
				Title:   "Understanding Crime Statistics - FBI",
				Snippet: "Crime statistics must be interpreted carefully. A 300% increase from 2 to 8 incidents, while technically accurate, can be misleading without proper context.",
			},
			{
				URL:     "https://www.factcheck.org/crime-statistics-guide",
				Title:   "How to Read Crime Statistics - FactCheck.org",
				Snippet: "Percentage increases in crime can be misleading when baseline numbers are very small. Context and absolute numbers are essential.",
			},
		},
		"default": {
			{
				URL:     "https://www.example-news.com/article",
				Title:   "Search Results - News Source",
				Snippet: "This is a generic search result. For real verification, configure a search API key.",
			},
		},
	}
}
