package verify

import (
	"github.com/claimlens/claimlens/internal/model"
)

// Verifier aggregates classification results for one claim into a verdict
type Verifier struct{}

// NewVerifier creates a new verifier
func NewVerifier() *Verifier {
	return &Verifier{}
}

// accumulator carries the weighted fold state over classification results
type accumulator struct {
	weightedSupport float64
	weightedRefute  float64
	totalWeight     float64
	supportCount    int
	refuteCount     int
	neutralCount    int
}

func (a accumulator) add(c model.Classification, weight float64) accumulator {
	a.totalWeight += weight
	switch c.Label {
	case model.LabelSupports:
		a.supportCount++
		a.weightedSupport += c.Support * weight
	case model.LabelRefutes:
		a.refuteCount++
		a.weightedRefute += c.Contradict * weight
	default:
		a.neutralCount++
	}
	return a
}

// Aggregate folds the classification results for a claim into a single
// verdict, weighting each result by its evidence item's credibility.
// Malformed classifications (probabilities not summing to ~1) are dropped.
// The result depends only on the multiset of inputs, never their order.
func (v *Verifier) Aggregate(claim model.Claim, evidence []model.EvidenceItem, classifications []model.Classification) model.ClaimVerdict {
	weights := make(map[string]float64, len(evidence))
	for _, ev := range evidence {
		weights[ev.ID] = ev.Credibility
	}

	var acc accumulator
	for _, c := range classifications {
		if !c.IsValid() {
			continue
		}
		weight, ok := weights[c.EvidenceID]
		if !ok {
			weight = 1.0
		}
		acc = acc.add(c, weight)
	}

	verdict := model.ClaimVerdict{
		ClaimID:      claim.ID,
		ClaimText:    claim.Text,
		SupportCount: acc.supportCount,
		RefuteCount:  acc.refuteCount,
		NeutralCount: acc.neutralCount,
	}

	if acc.totalWeight == 0 {
		verdict.Verdict = model.ClaimUnverified
		verdict.Confidence = 0
		return verdict
	}

	supportRatio := acc.weightedSupport / acc.totalWeight
	refuteRatio := acc.weightedRefute / acc.totalWeight

	// Ordered decision table: the strict opposing-ratio bounds on the
	// TRUE/FALSE rows push mixed-evidence cases down to MISLEADING.
	switch {
	case supportRatio > 0.6 && refuteRatio < 0.2:
		verdict.Verdict = model.ClaimTrue
		verdict.Confidence = supportRatio * 100
	case refuteRatio > 0.6 && supportRatio < 0.2:
		verdict.Verdict = model.ClaimFalse
		verdict.Confidence = refuteRatio * 100
	case supportRatio > 0.3 && refuteRatio > 0.3:
		verdict.Verdict = model.ClaimMisleading
		verdict.Confidence = 50
	default:
		verdict.Verdict = model.ClaimUnverified
		verdict.Confidence = 30
	}

	return verdict
}
