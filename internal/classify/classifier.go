package classify

import (
	"context"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Classifier is the entailment collaborator: given a premise (evidence
// snippet) and a hypothesis (claim), it returns three probabilities that
// must sum to ~1.0. The pipeline discards any other distribution.
type Classifier interface {
	// Name identifies the backing implementation
	Name() string

	// Classify scores how the premise relates to the hypothesis
	Classify(ctx context.Context, premise, hypothesis string) (Scores, error)
}

// Scores is the raw three-way distribution from the classifier
type Scores struct {
	Support    float64
	Contradict float64
	Neutral    float64
}

// Result attaches the distribution to a (claim, evidence) pair and labels
// it by argmax
func (s Scores) Result(claimID, evidenceID string) model.Classification {
	c := model.Classification{
		ClaimID:    claimID,
		EvidenceID: evidenceID,
		Support:    s.Support,
		Contradict: s.Contradict,
		Neutral:    s.Neutral,
	}
	c.Label = c.ArgmaxLabel()
	return c
}

// New builds the configured classifier. Without an LLM provider the keyword
// fallback is used.
func New(cfg model.LLMConfig) Classifier {
	if strings.EqualFold(cfg.Provider, "openai") && cfg.APIKey != "" {
		return NewOpenAI(cfg)
	}
	return NewKeyword()
}
