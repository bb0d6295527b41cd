package extract

import (
	"strings"
	"testing"
)

func TestArticleText_PlainTextPassthrough(t *testing.T) {
	got, err := ArticleText("  Just a plain paragraph of article text.  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Just a plain paragraph of article text." {
		t.Errorf("unexpected text: %q", got)
	}
}

func TestArticleText_StripsNonContent(t *testing.T) {
	doc := `<html><head><style>body{color:red}</style><script>var x=1;</script></head>
<body><nav>Home | About</nav>
<p>The senate passed the bill on Tuesday.</p>
<aside>Related stories</aside>
<footer>Copyright</footer></body></html>`

	got, err := ArticleText(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "senate passed the bill") {
		t.Errorf("expected article text, got %q", got)
	}
	for _, banned := range []string{"var x=1", "color:red", "Home | About", "Related stories", "Copyright"} {
		if strings.Contains(got, banned) {
			t.Errorf("non-content leaked into text: %q", banned)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	text := "The rate rose to 5 percent in March. Short. Officials confirmed the figure this week! Was it expected? " +
		strings.Repeat("x", 501) + ". Final sentence closes the article here."

	sentences := SplitSentences(text)

	want := []string{
		"The rate rose to 5 percent in March.",
		"Officials confirmed the figure this week!",
		"Final sentence closes the article here.",
	}
	for _, w := range want {
		found := false
		for _, s := range sentences {
			if s == w {
				found = true
			}
		}
		if !found {
			t.Errorf("missing sentence %q in %v", w, sentences)
		}
	}
	for _, s := range sentences {
		if len(s) < 20 || len(s) > 500 {
			t.Errorf("sentence length %d outside [20,500]: %q", len(s), s)
		}
	}
}

func TestRuleBasedCandidates_ContextNeighbors(t *testing.T) {
	text := "First sentence sets the scene here. Second sentence carries the claim today. Third sentence wraps the story up."

	candidates := RuleBasedCandidates(text)
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}

	middle := candidates[1]
	if !strings.Contains(middle.Context, "First sentence") || !strings.Contains(middle.Context, "Third sentence") {
		t.Errorf("middle candidate should carry both neighbors as context: %q", middle.Context)
	}
	if !strings.Contains(candidates[0].Context, "Second sentence") {
		t.Errorf("first candidate should carry the following sentence: %q", candidates[0].Context)
	}
}

func TestParseClaimBlocks(t *testing.T) {
	response := `CLAIM: Unemployment fell to 4 percent in June.
IMPORTANCE: 0.9
CONTEXT: Discussing the labor market report.

CLAIM: The minister resigned on Friday.
IMPORTANCE: 0.7
CONTEXT: Cabinet reshuffle coverage.

CLAIM: Garbage block
IMPORTANCE: ...
CONTEXT: ignored`

	candidates := parseClaimBlocks(response)
	if len(candidates) != 2 {
		t.Fatalf("expected 2 parsed candidates, got %d", len(candidates))
	}
	if candidates[0].Text != "Unemployment fell to 4 percent in June." {
		t.Errorf("unexpected first claim: %q", candidates[0].Text)
	}
	if candidates[1].Context != "Cabinet reshuffle coverage." {
		t.Errorf("unexpected second context: %q", candidates[1].Context)
	}
}

func TestParseClaimBlocks_Empty(t *testing.T) {
	if got := parseClaimBlocks("no structured content at all"); len(got) != 0 {
		t.Errorf("expected no candidates, got %d", len(got))
	}
}

func TestSearchQuery_StripsQuotesAndTruncates(t *testing.T) {
	got := SearchQuery(`The mayor said "we won't raise taxes" this year`)
	if strings.ContainsAny(got, `"'`) {
		t.Errorf("quotes not stripped: %q", got)
	}

	long := strings.Repeat("word ", 60)
	got = SearchQuery(long)
	if len(got) > 200 {
		t.Errorf("query not truncated: %d chars", len(got))
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("query has trailing space: %q", got)
	}
}

func TestSearchQuery_Empty(t *testing.T) {
	if got := SearchQuery("   "); got != "" {
		t.Errorf("expected empty query, got %q", got)
	}
}
