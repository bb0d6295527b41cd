package model

import "time"

// RawSearchHit is an unscored result from the search collaborator
type RawSearchHit struct {
	URL         string     `json:"url"`                    // Full URL
	Title       string     `json:"title,omitempty"`        // Result title
	Snippet     string     `json:"snippet"`                // Text snippet
	PublishDate *time.Time `json:"publish_date,omitempty"` // Publish date if the API reported one
}

// EvidenceItem is a ranked, credibility-filtered web snippet relevant to one claim
type EvidenceItem struct {
	ID          string     `json:"id"`                     // Unique identifier
	SourceURL   string     `json:"source_url"`             // Full URL
	SourceDom   string     `json:"source_domain"`          // Normalized domain
	Snippet     string     `json:"snippet"`                // Text snippet
	PublishDate *time.Time `json:"publish_date,omitempty"` // Publish date (optional)
	Credibility float64    `json:"credibility"`            // Source credibility in [0,1]
	Relevance   float64    `json:"relevance"`              // Claim-snippet relevance in (0,1]
}

// RelationshipLabel classifies how a piece of evidence relates to a claim
type RelationshipLabel string

const (
	LabelSupports RelationshipLabel = "SUPPORTS"
	LabelRefutes  RelationshipLabel = "REFUTES"
	LabelNeutral  RelationshipLabel = "NEUTRAL"
)

// ProbabilityTolerance is the allowed deviation of support+contradict+neutral from 1.0
const ProbabilityTolerance = 0.01

// Classification is the three-way distribution returned by the entailment
// collaborator for one (claim, evidence) pair
type Classification struct {
	ClaimID    string            `json:"claim_id"`
	EvidenceID string            `json:"evidence_id"`
	Support    float64           `json:"support"`    // P(evidence entails claim)
	Contradict float64           `json:"contradict"` // P(evidence contradicts claim)
	Neutral    float64           `json:"neutral"`    // P(neither)
	Label      RelationshipLabel `json:"label"`      // Argmax of the three
}

// IsValid reports whether the distribution sums to 1.0 within tolerance.
// Invalid classifications are dropped from aggregation, never repaired.
func (c Classification) IsValid() bool {
	sum := c.Support + c.Contradict + c.Neutral
	diff := sum - 1.0
	if diff < 0 {
		diff = -diff
	}
	return diff < ProbabilityTolerance
}

// ArgmaxLabel returns the label matching the highest probability.
// Ties resolve SUPPORTS > REFUTES > NEUTRAL.
func (c Classification) ArgmaxLabel() RelationshipLabel {
	label := LabelSupports
	best := c.Support
	if c.Contradict > best {
		label = LabelRefutes
		best = c.Contradict
	}
	if c.Neutral > best {
		label = LabelNeutral
	}
	return label
}
