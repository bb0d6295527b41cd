package rank

import (
	"strings"
	"testing"

	"github.com/claimlens/claimlens/internal/credibility"
	"github.com/claimlens/claimlens/internal/model"
)

func testEvidenceRanker(minCred float64, maxEv int) *EvidenceRanker {
	index := credibility.NewIndex(model.CredibilityConfig{DefaultScore: 0.5})
	return NewEvidenceRanker(index, model.SearchConfig{
		MinCredibility:      minCred,
		MaxEvidencePerClaim: maxEv,
	})
}

func TestEvidenceRank_DiscardsLowCredibility(t *testing.T) {
	ranker := testEvidenceRanker(0.3, 5)
	claim := model.Claim{ID: "claim-1", Text: "Vaccination rates increased in 2024"}

	hits := []model.RawSearchHit{
		{URL: "https://www.reuters.com/health/story", Snippet: "Vaccination rates increased across multiple regions in 2024."},
		{URL: "https://worldnewsdailyreport.com/fake", Snippet: "Vaccination rates increased, experts shocked."},
	}

	items := ranker.Rank(claim, hits)
	if len(items) != 1 {
		t.Fatalf("expected 1 item after credibility filter, got %d", len(items))
	}
	if items[0].SourceDom != "reuters.com" {
		t.Errorf("expected reuters.com to survive, got %s", items[0].SourceDom)
	}
}

func TestEvidenceRank_DiscardsIrrelevant(t *testing.T) {
	ranker := testEvidenceRanker(0.3, 5)
	claim := model.Claim{ID: "claim-1", Text: "Vaccination rates increased in 2024"}

	hits := []model.RawSearchHit{
		{URL: "https://www.reuters.com/sports", Snippet: "Quarterly football scores announced yesterday."},
	}

	items := ranker.Rank(claim, hits)
	if len(items) != 0 {
		t.Errorf("expected irrelevant hit to be dropped, got %d items", len(items))
	}
}

func TestEvidenceRank_DiscardsMalformedHits(t *testing.T) {
	ranker := testEvidenceRanker(0.3, 5)
	claim := model.Claim{ID: "claim-1", Text: "Vaccination rates increased in 2024"}

	hits := []model.RawSearchHit{
		{URL: "", Snippet: "Vaccination rates increased in 2024."},
		{URL: "https://www.reuters.com/health", Snippet: ""},
	}

	items := ranker.Rank(claim, hits)
	if len(items) != 0 {
		t.Errorf("expected malformed hits to be dropped, got %d items", len(items))
	}
}

func TestEvidenceRank_CapsAtMaxEvidence(t *testing.T) {
	ranker := testEvidenceRanker(0.3, 2)
	claim := model.Claim{ID: "claim-1", Text: "Vaccination rates increased in 2024"}

	hits := []model.RawSearchHit{
		{URL: "https://reuters.com/a", Snippet: "Vaccination rates increased in 2024 nationwide."},
		{URL: "https://bbc.com/b", Snippet: "Vaccination rates increased in 2024 across Europe."},
		{URL: "https://npr.org/c", Snippet: "Vaccination rates increased in 2024, data shows."},
	}

	items := ranker.Rank(claim, hits)
	if len(items) != 2 {
		t.Errorf("expected 2 items after cap, got %d", len(items))
	}
}

func TestEvidenceRank_OrderedByCombinedScore(t *testing.T) {
	ranker := testEvidenceRanker(0.3, 5)
	claim := model.Claim{ID: "claim-1", Text: "Vaccination rates increased in 2024"}

	hits := []model.RawSearchHit{
		{URL: "https://nypost.com/x", Snippet: "Vaccination rates increased in 2024."},
		{URL: "https://reuters.com/y", Snippet: "Vaccination rates increased in 2024."},
	}

	items := ranker.Rank(claim, hits)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Same relevance, so the more credible source must rank first
	if items[0].SourceDom != "reuters.com" {
		t.Errorf("expected reuters.com first, got %s", items[0].SourceDom)
	}
	for i := 1; i < len(items); i++ {
		if combinedScore(items[i]) > combinedScore(items[i-1]) {
			t.Error("items not in descending combined-score order")
		}
	}
}

func TestEvidenceRank_IDsAreSequential(t *testing.T) {
	ranker := testEvidenceRanker(0.3, 5)
	claim := model.Claim{ID: "claim-7", Text: "Vaccination rates increased in 2024"}

	hits := []model.RawSearchHit{
		{URL: "https://reuters.com/a", Snippet: "Vaccination rates increased in 2024."},
		{URL: "https://bbc.com/b", Snippet: "Vaccination rates increased in 2024."},
	}

	items := ranker.Rank(claim, hits)
	for i, item := range items {
		if !strings.HasPrefix(item.ID, "claim-7-ev-") {
			t.Errorf("item %d has unexpected ID %s", i, item.ID)
		}
	}
}

func TestRelevance_Bounds(t *testing.T) {
	cases := [][2]string{
		{"Vaccination rates increased in 2024", "Vaccination rates increased in 2024"},
		{"Vaccination rates increased", "completely unrelated text here"},
		{"", "nonempty"},
		{"nonempty", ""},
	}
	for _, c := range cases {
		got := Relevance(c[0], c[1])
		if got < 0 || got > 1 {
			t.Errorf("Relevance(%q, %q) = %f, out of [0,1]", c[0], c[1], got)
		}
	}
}

func TestRelevance_IdenticalTexts(t *testing.T) {
	got := Relevance("vaccination rates increased", "vaccination rates increased")
	if got != 1.0 {
		t.Errorf("expected 1.0 for identical texts (Jaccard 1.0 with containment boost), got %f", got)
	}
}

func TestRelevance_NoOverlap(t *testing.T) {
	got := Relevance("vaccination rates increased", "quarterly football scores announced")
	if got != 0 {
		t.Errorf("expected 0 for disjoint texts, got %f", got)
	}
}

func TestRelevance_ContainmentBoost(t *testing.T) {
	claim := "vaccination rates increased"
	containing := "officials confirmed vaccination rates increased across regions"
	partial := "officials confirmed rates increased across vaccination regions yesterday"

	withBoost := Relevance(claim, containing)
	withoutBoost := Relevance(claim, partial)
	if withBoost <= withoutBoost {
		t.Errorf("expected containment boost: containing=%f partial=%f", withBoost, withoutBoost)
	}
}

func TestRelevance_StopWordsIgnored(t *testing.T) {
	// Overlap purely on stop words counts for nothing
	got := Relevance("the and of with", "word the and of")
	if got != 0 {
		t.Errorf("expected 0 when overlap is stop words only, got %f", got)
	}
}
