package classify

import (
	"context"
	"strings"
	"unicode"
)

// Keyword is the offline fallback classifier. It scores word overlap
// between the claim and the evidence snippet, then checks for negation
// terms that flip overlap into contradiction. Crude but deterministic,
// and good enough to keep the pipeline functional without an LLM.
type Keyword struct{}

// NewKeyword creates the overlap-based fallback classifier
func NewKeyword() *Keyword {
	return &Keyword{}
}

// Name returns the classifier name
func (k *Keyword) Name() string {
	return "keyword"
}

var negationTerms = map[string]bool{
	"not":      true,
	"no":       true,
	"never":    true,
	"false":    true,
	"deny":     true,
	"denies":   true,
	"denied":   true,
	"debunked": true,
	"refuted":  true,
	"hoax":     true,
	"myth":     true,
	"untrue":   true,
	"without":  true,
}

// Classify estimates the relationship from lexical overlap
func (k *Keyword) Classify(_ context.Context, premise, hypothesis string) (Scores, error) {
	claimWords := tokenSet(hypothesis)
	evidenceWords := tokenSet(premise)

	if len(claimWords) == 0 || len(evidenceWords) == 0 {
		return Scores{Support: 0.2, Contradict: 0.2, Neutral: 0.6}, nil
	}

	overlap := 0
	for w := range claimWords {
		if evidenceWords[w] {
			overlap++
		}
	}
	ratio := float64(overlap) / float64(len(claimWords))

	negated := false
	for w := range evidenceWords {
		if negationTerms[w] && !claimWords[w] {
			negated = true
			break
		}
	}

	switch {
	case ratio > 0.5 && negated:
		// Evidence talks about the claim but negates it
		return Scores{Support: 0.15, Contradict: 0.6, Neutral: 0.25}, nil
	case ratio > 0.5:
		return Scores{Support: 0.6, Contradict: 0.2, Neutral: 0.2}, nil
	case ratio > 0.2:
		return Scores{Support: 0.3, Contradict: 0.2, Neutral: 0.5}, nil
	default:
		return Scores{Support: 0.2, Contradict: 0.2, Neutral: 0.6}, nil
	}
}

// tokenSet lowercases and splits text into a set of words of length > 3
func tokenSet(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) > 3 || negationTerms[w] {
			set[w] = true
		}
	}
	return set
}
