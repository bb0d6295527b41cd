package synthesis

import (
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

const noClaimsExplanation = "We couldn't verify this article: no verifiable claims were found. " +
	"The text may be opinion, commentary, or too vague to fact-check."

// Explain renders the natural-language explanation from fixed templates keyed
// by the overall verdict and each claim's outcome.
func Explain(verdicts []model.ClaimVerdict, finalScore float64, overall model.ArticleVerdictType, evidence map[string][]model.EvidenceItem, classifications map[string][]model.Classification) string {
	var b strings.Builder

	switch overall {
	case model.ArticleLikelyTrue:
		fmt.Fprintf(&b, "This article appears to be largely accurate (confidence: %.0f%%). "+
			"Most of the factual claims are supported by credible evidence.", finalScore)
	case model.ArticleLikelyFalse:
		fmt.Fprintf(&b, "This article contains significant inaccuracies (confidence: %.0f%%). "+
			"Many of the factual claims are contradicted by credible evidence.", finalScore)
	case model.ArticleMisleading:
		fmt.Fprintf(&b, "This article is misleading (confidence: %.0f%%). "+
			"It contains a mix of accurate and inaccurate information, "+
			"or presents facts in a way that could mislead readers.", finalScore)
	default:
		fmt.Fprintf(&b, "We couldn't verify this article (confidence: %.0f%%). "+
			"There isn't enough reliable evidence available to confirm or deny the claims.", finalScore)
	}

	trueCount, falseCount, misleadingCount, unverifiedCount := 0, 0, 0, 0
	for _, v := range verdicts {
		switch v.Verdict {
		case model.ClaimTrue:
			trueCount++
		case model.ClaimFalse:
			falseCount++
		case model.ClaimMisleading:
			misleadingCount++
		default:
			unverifiedCount++
		}
	}

	fmt.Fprintf(&b, "\n\nWe analyzed %d factual claim%s from this article:", len(verdicts), plural(len(verdicts)))
	if trueCount > 0 {
		fmt.Fprintf(&b, "\n- %d claim%s %s supported by evidence", trueCount, plural(trueCount), isAre(trueCount))
	}
	if falseCount > 0 {
		fmt.Fprintf(&b, "\n- %d claim%s %s contradicted by evidence", falseCount, plural(falseCount), isAre(falseCount))
	}
	if misleadingCount > 0 {
		fmt.Fprintf(&b, "\n- %d claim%s %s misleading or partially true", misleadingCount, plural(misleadingCount), isAre(misleadingCount))
	}
	if unverifiedCount > 0 {
		fmt.Fprintf(&b, "\n- %d claim%s could not be verified", unverifiedCount, plural(unverifiedCount))
	}

	b.WriteString("\n\nClaim-by-claim analysis:")
	for i, v := range verdicts {
		text := v.ClaimText
		if len(text) > 100 {
			text = text[:100] + "..."
		}
		fmt.Fprintf(&b, "\n%d. %q\n", i+1, text)

		switch v.Verdict {
		case model.ClaimTrue:
			fmt.Fprintf(&b, "   SUPPORTED: This claim is backed by %d credible source(s). "+
				"The evidence confirms this information.", v.SupportCount)
		case model.ClaimFalse:
			fmt.Fprintf(&b, "   FALSE: This claim is contradicted by %d credible source(s).", v.RefuteCount)
			if source := refutingSource(v.ClaimID, evidence, classifications); source != "" {
				fmt.Fprintf(&b, " See %s.", source)
			}
		case model.ClaimMisleading:
			fmt.Fprintf(&b, "   MISLEADING: This claim has conflicting evidence "+
				"(%d supporting, %d contradicting). The truth is more nuanced than presented.",
				v.SupportCount, v.RefuteCount)
		default:
			b.WriteString("   UNVERIFIED: We couldn't find enough reliable evidence to verify this claim.")
		}
	}

	return b.String()
}

// refutingSource names the highest-ranked source whose evidence contradicts
// the claim, for the FALSE claim template.
func refutingSource(claimID string, evidence map[string][]model.EvidenceItem, classifications map[string][]model.Classification) string {
	refuted := make(map[string]bool)
	for _, c := range classifications[claimID] {
		if c.Label == model.LabelRefutes {
			refuted[c.EvidenceID] = true
		}
	}
	for _, ev := range evidence[claimID] {
		if refuted[ev.ID] {
			return ev.SourceDom
		}
	}
	return ""
}

func plural(n int) string {
	if n != 1 {
		return "s"
	}
	return ""
}

func isAre(n int) string {
	if n != 1 {
		return "are"
	}
	return "is"
}
