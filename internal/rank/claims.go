package rank

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// ClaimRanker filters opinion claims and orders the rest by importance
type ClaimRanker struct {
	maxClaims int
	minLength int
}

// NewClaimRanker creates a ranker with the given limits
func NewClaimRanker(cfg model.RankerConfig) *ClaimRanker {
	maxClaims := cfg.MaxClaims
	if maxClaims <= 0 {
		maxClaims = 10
	}
	minLength := cfg.MinClaimLength
	if minLength <= 0 {
		minLength = 25
	}
	return &ClaimRanker{
		maxClaims: maxClaims,
		minLength: minLength,
	}
}

// opinionMarkers flag first-person judgment and hedging
var opinionMarkers = []string{
	"i think", "i believe", "in my opinion", "i feel",
	"should", "must", "ought to", "need to",
	"probably", "maybe", "perhaps", "possibly",
	"seems like", "appears to be",
}

// subjectiveWords flag evaluative language without factual content
var subjectiveWords = []string{
	"best", "worst", "greatest", "terrible", "awful",
	"amazing", "wonderful", "horrible", "fantastic",
	"beautiful", "ugly", "good", "bad", "better", "worse",
}

// factualMarkers indicate attribution, reporting, or measurable content
var factualMarkers = []string{
	"said", "reported", "announced", "confirmed", "revealed",
	"according to", "study", "research", "data", "statistics",
	"percent", "%", "million", "billion", "year", "date",
	"government", "official", "company", "organization",
}

var (
	numeralRe     = regexp.MustCompile(`\d+`)
	yearRe        = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	capitalizedRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
)

// Rank filters non-factual candidates and assigns each retained claim an
// importance score in [0.1, 1], sorted descending. Ties keep extraction
// order. An empty result means "no verifiable claims", not an error.
func (r *ClaimRanker) Rank(candidates []model.CandidateClaim, articleText string) []model.Claim {
	var claims []model.Claim

	for i, cand := range candidates {
		text := strings.TrimSpace(cand.Text)
		if !r.isFactual(text) {
			continue
		}

		claims = append(claims, model.Claim{
			ID:         fmt.Sprintf("claim-%d", i+1),
			Text:       text,
			Context:    cand.Context,
			Importance: Importance(text, articleText),
		})
	}

	sort.SliceStable(claims, func(a, b int) bool {
		return claims[a].Importance > claims[b].Importance
	})

	if len(claims) > r.maxClaims {
		claims = claims[:r.maxClaims]
	}
	return claims
}

// isFactual reports whether a claim looks verifiable rather than opinion.
// Claims below the minimum length are always rejected as fragments.
func (r *ClaimRanker) isFactual(claim string) bool {
	if len(claim) < r.minLength {
		return false
	}

	lower := strings.ToLower(claim)

	for _, marker := range opinionMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}

	hasFactual := containsAny(lower, factualMarkers)
	if hasFactual {
		return true
	}
	if containsAny(lower, subjectiveWords) {
		return false
	}

	// No clear indicator either way: keep it
	return true
}

// Importance combines four additive factors, clamped to [0,1] with a 0.1
// floor so no retained claim ranks at zero.
func Importance(claim, articleText string) float64 {
	lower := strings.ToLower(claim)
	articleLower := strings.ToLower(articleText)

	// Position: linear decay from 1.0 at the start to 0.5 at the end.
	// Paraphrased claims not found verbatim score a neutral 0.7.
	position := 0.7
	if idx := strings.Index(articleLower, lower); idx >= 0 && len(articleText) > 0 {
		ratio := float64(idx) / float64(len(articleText))
		position = 1.0 - ratio*0.5
	}

	// Keyword density, capped at 0.5
	keywords := 0.0
	for _, kw := range factualMarkers {
		if strings.Contains(lower, kw) {
			keywords += 0.15
		}
	}
	if keywords > 0.5 {
		keywords = 0.5
	}

	// Specificity: numerals, years, proper nouns
	specificity := 0.0
	if numeralRe.MatchString(claim) {
		specificity += 0.2
	}
	if yearRe.MatchString(claim) {
		specificity += 0.15
	}
	if len(capitalizedRe.FindAllString(claim, 3)) >= 2 {
		specificity += 0.15
	}

	// Length: longer claims carry more information
	length := 0.0
	switch {
	case len(claim) > 100:
		length = 0.1
	case len(claim) > 50:
		length = 0.05
	}

	importance := position + keywords + specificity + length
	if importance > 1.0 {
		importance = 1.0
	}
	if importance < 0.1 {
		importance = 0.1
	}
	return importance
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
