package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/claimlens/claimlens/internal/credibility"
	"github.com/claimlens/claimlens/internal/model"
)

// relevanceWeight and credibilityWeight blend the two signals into the
// combined ranking score
const (
	relevanceWeight   = 0.7
	credibilityWeight = 0.3
)

// EvidenceRanker filters raw search hits by source credibility and ranks
// the survivors by a relevance/credibility blend
type EvidenceRanker struct {
	index          *credibility.Index
	minCredibility float64
	maxEvidence    int
}

// NewEvidenceRanker creates a ranker backed by the given credibility index
func NewEvidenceRanker(index *credibility.Index, cfg model.SearchConfig) *EvidenceRanker {
	minCred := cfg.MinCredibility
	if minCred <= 0 {
		minCred = 0.3
	}
	maxEv := cfg.MaxEvidencePerClaim
	if maxEv <= 0 {
		maxEv = 5
	}
	return &EvidenceRanker{
		index:          index,
		minCredibility: minCred,
		maxEvidence:    maxEv,
	}
}

// Rank turns raw search hits into scored evidence items. Hits from sources
// below the credibility threshold are discarded, as are hits with zero
// relevance to the claim. An empty result is a valid outcome, not an error.
func (r *EvidenceRanker) Rank(claim model.Claim, hits []model.RawSearchHit) []model.EvidenceItem {
	var items []model.EvidenceItem

	for _, hit := range hits {
		if hit.URL == "" || hit.Snippet == "" {
			continue
		}

		source := r.index.Lookup(hit.URL)
		if source.Score < r.minCredibility {
			continue
		}

		relevance := Relevance(claim.Text, hit.Snippet)
		if relevance <= 0 {
			continue
		}

		items = append(items, model.EvidenceItem{
			ID:          fmt.Sprintf("%s-ev-%d", claim.ID, len(items)+1),
			SourceURL:   hit.URL,
			SourceDom:   source.Domain,
			Snippet:     hit.Snippet,
			PublishDate: hit.PublishDate,
			Credibility: source.Score,
			Relevance:   relevance,
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		return combinedScore(items[a]) > combinedScore(items[b])
	})

	if len(items) > r.maxEvidence {
		items = items[:r.maxEvidence]
	}
	return items
}

func combinedScore(item model.EvidenceItem) float64 {
	return relevanceWeight*item.Relevance + credibilityWeight*item.Credibility
}

// stopWords are excluded from relevance comparison
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "this": true, "that": true, "these": true,
	"those": true, "it": true, "its": true, "they": true, "them": true,
	"their": true,
}

// Relevance measures claim/snippet similarity as Jaccard overlap of
// non-stop-word tokens, boosted when one text contains the other.
// Returns a value in [0,1].
func Relevance(claimText, snippet string) float64 {
	if claimText == "" || snippet == "" {
		return 0
	}

	claimLower := strings.ToLower(claimText)
	snippetLower := strings.ToLower(snippet)

	claimWords := contentWords(claimLower)
	snippetWords := contentWords(snippetLower)
	if len(claimWords) == 0 || len(snippetWords) == 0 {
		return 0
	}

	intersection := 0
	union := len(snippetWords)
	for w := range claimWords {
		if snippetWords[w] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}

	score := float64(intersection) / float64(union)

	if strings.Contains(snippetLower, claimLower) || strings.Contains(claimLower, snippetLower) {
		score *= 1.5
		if score > 1.0 {
			score = 1.0
		}
	}
	return score
}

func contentWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if w != "" && !stopWords[w] {
			words[w] = true
		}
	}
	return words
}
