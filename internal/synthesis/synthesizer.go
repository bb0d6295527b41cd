package synthesis

import (
	"sort"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

// Weights of the article-level scoring formula
const (
	evidenceWeight = 0.6
	sourceWeight   = 0.2
	styleWeight    = 0.2
)

// Synthesizer combines per-claim verdicts, tone, and source credibility into
// the final article verdict. Pure computation, no I/O.
type Synthesizer struct{}

// NewSynthesizer creates a new synthesizer
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Input carries everything the synthesizer needs for one article
type Input struct {
	Verdicts        []model.ClaimVerdict              // In claim order
	Evidence        map[string][]model.EvidenceItem   // By claim ID
	Classifications map[string][]model.Classification // By claim ID
	Tone            model.ToneScore
	AvgCredibility  float64 // Mean credibility over all evidence, [0,1]
	SourceURL       string
}

// Synthesize produces the final verdict. With zero claims it short-circuits
// to UNVERIFIED with confidence 0; the score formula never runs.
func (s *Synthesizer) Synthesize(in Input) model.FinalVerdict {
	now := time.Now().UTC()

	if len(in.Verdicts) == 0 {
		return model.FinalVerdict{
			Verdict:               model.ArticleUnverified,
			ConfidenceScore:       0,
			FactualAccuracy:       0,
			EmotionalManipulation: in.Tone.Sensationalism * 100,
			ClaimBreakdown:        []model.ClaimVerdict{},
			EvidenceCards:         []model.EvidenceCard{},
			Explanation:           noClaimsExplanation,
			Tone:                  in.Tone,
			SourceURL:             in.SourceURL,
			VerifiedAt:            now,
		}
	}

	total := len(in.Verdicts)
	trueCount, falseCount, misleadingCount := 0, 0, 0
	for _, v := range in.Verdicts {
		switch v.Verdict {
		case model.ClaimTrue:
			trueCount++
		case model.ClaimFalse:
			falseCount++
		case model.ClaimMisleading:
			misleadingCount++
		}
	}

	evidenceMatch := float64(trueCount) / float64(total) * 100
	writingStyle := (1 - in.Tone.Sensationalism) * 100

	raw := evidenceWeight*evidenceMatch + sourceWeight*(in.AvgCredibility*100) + styleWeight*writingStyle

	if misleadingCount > 0 {
		raw -= float64(misleadingCount) / float64(total) * 20
	}
	if float64(falseCount) > float64(total)/2 {
		raw *= 0.5
	}

	finalScore := clamp(raw, 0, 100)

	// Strict priority order, biased toward precision on FALSE detection: a
	// majority-false article must never register as TRUE.
	var verdict model.ArticleVerdictType
	falseRatio := float64(falseCount) / float64(total)
	misleadingRatio := float64(misleadingCount) / float64(total)
	trueRatio := float64(trueCount) / float64(total)
	switch {
	case falseRatio > 0.4 || finalScore < 40:
		verdict = model.ArticleLikelyFalse
	case misleadingRatio > 0.3 || (finalScore >= 40 && finalScore <= 65):
		verdict = model.ArticleMisleading
	case trueRatio > 0.6 && finalScore >= 65:
		verdict = model.ArticleLikelyTrue
	default:
		verdict = model.ArticleUnverified
	}

	cards := BuildEvidenceCards(in.Verdicts, in.Evidence, in.Classifications)

	return model.FinalVerdict{
		Verdict:               verdict,
		ConfidenceScore:       finalScore,
		FactualAccuracy:       evidenceMatch,
		EmotionalManipulation: in.Tone.Sensationalism * 100,
		ClaimBreakdown:        in.Verdicts,
		EvidenceCards:         cards,
		Explanation:           Explain(in.Verdicts, finalScore, verdict, in.Evidence, in.Classifications),
		Tone:                  in.Tone,
		SourceURL:             in.SourceURL,
		VerifiedAt:            now,
	}
}

// cardPriority orders cards within a claim: contradicting evidence first
func cardPriority(label model.RelationshipLabel) int {
	switch label {
	case model.LabelRefutes:
		return 0
	case model.LabelSupports:
		return 1
	default:
		return 2
	}
}

// BuildEvidenceCards creates one card per classified (claim, evidence) pair.
// Cards are keyed off the verdicts so every claim in the breakdown is
// represented; a claim with no classified evidence still gets a single
// "no evidence found" card.
func BuildEvidenceCards(verdicts []model.ClaimVerdict, evidence map[string][]model.EvidenceItem, classifications map[string][]model.Classification) []model.EvidenceCard {
	cards := []model.EvidenceCard{}

	for _, v := range verdicts {
		byEvidence := make(map[string]model.Classification)
		for _, c := range classifications[v.ClaimID] {
			byEvidence[c.EvidenceID] = c
		}

		claimCards := []model.EvidenceCard{}
		for _, ev := range evidence[v.ClaimID] {
			cls, ok := byEvidence[ev.ID]
			if !ok {
				continue
			}

			card := model.EvidenceCard{
				ClaimID:      v.ClaimID,
				ClaimText:    v.ClaimText,
				Snippet:      ev.Snippet,
				SourceURL:    ev.SourceURL,
				SourceName:   ev.SourceDom,
				Relationship: cls.Label,
			}
			if cls.Label == model.LabelRefutes {
				card.Discrepancies = HighlightDiscrepancies(v.ClaimText, ev.Snippet)
			}
			claimCards = append(claimCards, card)
		}

		if len(claimCards) == 0 {
			claimCards = append(claimCards, model.EvidenceCard{
				ClaimID:      v.ClaimID,
				ClaimText:    v.ClaimText,
				Snippet:      "No evidence found for this claim.",
				Relationship: model.LabelNeutral,
			})
		}

		// Refuting evidence first; ties keep evidence rank order
		sort.SliceStable(claimCards, func(a, b int) bool {
			return cardPriority(claimCards[a].Relationship) < cardPriority(claimCards[b].Relationship)
		})

		cards = append(cards, claimCards...)
	}
	return cards
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
