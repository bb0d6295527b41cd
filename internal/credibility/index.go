package credibility

import (
	"net/url"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Category buckets a source by its trust score
type Category string

const (
	CategoryTrusted      Category = "TRUSTED"      // [0.8, 1.0]
	CategoryMainstream   Category = "MAINSTREAM"   // [0.5, 0.8)
	CategoryQuestionable Category = "QUESTIONABLE" // [0.3, 0.5)
	CategoryUnreliable   Category = "UNRELIABLE"   // [0.0, 0.3)
)

// Source is the credibility record for one domain
type Source struct {
	Domain   string   `json:"domain"`
	Score    float64  `json:"score"` // [0,1]
	Category Category `json:"category"`
}

// Index maps source domains to trust scores. It is an immutable snapshot:
// built once from the built-in table plus config overrides, then read-only,
// so verification stays pure and reproducible.
type Index struct {
	scores       map[string]float64
	defaultScore float64
}

// builtinScores is the default domain trust table
var builtinScores = map[string]float64{
	"apnews.com":               0.95,
	"reuters.com":              0.95,
	"who.int":                  0.95,
	"nature.com":               0.95,
	"bbc.com":                  0.9,
	"bbc.co.uk":                0.9,
	"factcheck.org":            0.9,
	"snopes.com":               0.9,
	"npr.org":                  0.9,
	"fbi.gov":                  0.9,
	"mayoclinic.org":           0.9,
	"cancerresearchuk.org":     0.9,
	"theguardian.com":          0.85,
	"nytimes.com":              0.85,
	"washingtonpost.com":       0.85,
	"wsj.com":                  0.85,
	"economist.com":            0.85,
	"wikipedia.org":            0.8,
	"en.wikipedia.org":         0.8,
	"espn.com":                 0.75,
	"cnn.com":                  0.7,
	"nbcnews.com":              0.7,
	"cbsnews.com":              0.7,
	"abcnews.go.com":           0.7,
	"usatoday.com":             0.65,
	"foxnews.com":              0.6,
	"huffpost.com":             0.55,
	"buzzfeednews.com":         0.55,
	"nypost.com":               0.5,
	"dailymail.co.uk":          0.45,
	"breitbart.com":            0.3,
	"theonion.com":             0.2,
	"naturalnews.com":          0.15,
	"infowars.com":             0.1,
	"beforeitsnews.com":        0.1,
	"worldnewsdailyreport.com": 0.05,
}

// NewIndex builds an index from the built-in table merged with config
// overrides. Override entries win over built-ins.
func NewIndex(cfg model.CredibilityConfig) *Index {
	scores := make(map[string]float64, len(builtinScores)+len(cfg.Overrides))
	for domain, score := range builtinScores {
		scores[domain] = score
	}
	for domain, score := range cfg.Overrides {
		scores[NormalizeDomain(domain)] = clamp01(score)
	}

	defaultScore := cfg.DefaultScore
	if defaultScore <= 0 || defaultScore > 1 {
		defaultScore = 0.5
	}

	return &Index{
		scores:       scores,
		defaultScore: defaultScore,
	}
}

// Lookup resolves a domain or URL to its credibility record.
// Unknown domains get the default score, never an error.
func (ix *Index) Lookup(domainOrURL string) Source {
	domain := NormalizeDomain(domainOrURL)

	score, ok := ix.scores[domain]
	if !ok {
		// Try the registrable suffix, so news.bbc.co.uk matches bbc.co.uk
		if idx := strings.Index(domain, "."); idx > 0 {
			if s, found := ix.scores[domain[idx+1:]]; found {
				score, ok = s, true
			}
		}
	}
	if !ok {
		score = ix.defaultScore
	}

	return Source{
		Domain:   domain,
		Score:    score,
		Category: Categorize(score),
	}
}

// Categorize maps a score to its trust category
func Categorize(score float64) Category {
	switch {
	case score >= 0.8:
		return CategoryTrusted
	case score >= 0.5:
		return CategoryMainstream
	case score >= 0.3:
		return CategoryQuestionable
	default:
		return CategoryUnreliable
	}
}

// NormalizeDomain extracts a lowercase domain from a URL or bare host,
// stripping any port and www. prefix
func NormalizeDomain(domainOrURL string) string {
	domain := strings.TrimSpace(domainOrURL)

	if strings.Contains(domain, "://") {
		if parsed, err := url.Parse(domain); err == nil && parsed.Host != "" {
			domain = parsed.Host
		}
	}

	if idx := strings.Index(domain, ":"); idx > 0 {
		domain = domain[:idx]
	}
	domain = strings.TrimPrefix(domain, "www.")

	return strings.ToLower(domain)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
