package model

// CandidateClaim is a raw claim proposed by the extraction collaborator,
// before filtering and importance ranking
type CandidateClaim struct {
	Text    string `json:"text"`              // Proposed claim text
	Context string `json:"context,omitempty"` // Surrounding sentences from the source, if known
}

// Claim represents an atomic, independently verifiable factual statement
type Claim struct {
	ID         string  `json:"id"`                // Unique identifier
	Text       string  `json:"text"`              // The claim text itself
	Context    string  `json:"context,omitempty"` // Source-context snippet
	Importance float64 `json:"importance"`        // Importance score in [0,1], floor 0.1
}
