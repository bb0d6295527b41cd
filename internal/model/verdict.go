package model

import "time"

// ClaimVerdictType is the categorical outcome for a single claim
type ClaimVerdictType string

const (
	ClaimTrue       ClaimVerdictType = "TRUE"
	ClaimFalse      ClaimVerdictType = "FALSE"
	ClaimMisleading ClaimVerdictType = "MISLEADING"
	ClaimUnverified ClaimVerdictType = "UNVERIFIED"
)

// ArticleVerdictType is the categorical outcome for the whole article
type ArticleVerdictType string

const (
	ArticleLikelyTrue  ArticleVerdictType = "LIKELY_TRUE"
	ArticleLikelyFalse ArticleVerdictType = "LIKELY_FALSE"
	ArticleMisleading  ArticleVerdictType = "MISLEADING"
	ArticleUnverified  ArticleVerdictType = "UNVERIFIED"
)

// ClaimVerdict is the per-claim aggregation result, derived deterministically
// from the classifications for that claim
type ClaimVerdict struct {
	ClaimID      string           `json:"claim_id"`
	ClaimText    string           `json:"claim_text"`
	Verdict      ClaimVerdictType `json:"verdict"`
	Confidence   float64          `json:"confidence"`    // [0,100]
	SupportCount int              `json:"support_count"` // Raw label tallies
	RefuteCount  int              `json:"refute_count"`
	NeutralCount int              `json:"neutral_count"`
}

// ToneScore measures sensationalism and manipulation in the article prose,
// decoupled from factual accuracy
type ToneScore struct {
	EmotionalIntensity  float64  `json:"emotional_intensity"`  // [0,1]
	Sensationalism      float64  `json:"sensationalism"`       // [0,1]
	Objectivity         float64  `json:"objectivity"`          // 1 - sensationalism
	ManipulativePhrases []string `json:"manipulative_phrases"` // Matched phrases, original casing
}

// EvidenceCard pairs one claim with one piece of evidence for presentation
type EvidenceCard struct {
	ClaimID       string            `json:"claim_id"`
	ClaimText     string            `json:"claim_text"`
	Snippet       string            `json:"snippet"`
	SourceURL     string            `json:"source_url"`
	SourceName    string            `json:"source_name"`
	Relationship  RelationshipLabel `json:"relationship"`
	Discrepancies []string          `json:"discrepancies,omitempty"` // Highlighted for REFUTES
}

// FinalVerdict is the article-level output, built once per run
type FinalVerdict struct {
	Verdict               ArticleVerdictType `json:"verdict"`
	ConfidenceScore       float64            `json:"confidence_score"`       // [0,100]
	FactualAccuracy       float64            `json:"factual_accuracy"`       // [0,100]
	EmotionalManipulation float64            `json:"emotional_manipulation"` // [0,100]
	ClaimBreakdown        []ClaimVerdict     `json:"claim_breakdown"`
	EvidenceCards         []EvidenceCard     `json:"evidence_cards"`
	Explanation           string             `json:"explanation"`
	Tone                  ToneScore          `json:"tone"`
	SourceURL             string             `json:"source_url,omitempty"` // Set when verifying a URL
	VerifiedAt            time.Time          `json:"verified_at"`
}
