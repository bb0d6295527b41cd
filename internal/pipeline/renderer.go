package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Renderer writes verdicts as JSON, Markdown, and a terminal summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the verdict as indented JSON to the given path
func (r *Renderer) RenderJSON(verdict *model.FinalVerdict, path string) error {
	data, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report to the given path
func (r *Renderer) RenderMarkdown(verdict *model.FinalVerdict, path string) error {
	var b strings.Builder

	b.WriteString("# Verification Report\n\n")
	if verdict.SourceURL != "" {
		fmt.Fprintf(&b, "**Source:** %s\n\n", verdict.SourceURL)
	}
	fmt.Fprintf(&b, "**Verdict:** %s (confidence %.0f/100)\n\n", verdict.Verdict, verdict.ConfidenceScore)
	fmt.Fprintf(&b, "**Factual accuracy:** %.0f/100\n\n", verdict.FactualAccuracy)
	fmt.Fprintf(&b, "**Emotional manipulation:** %.0f/100\n\n", verdict.EmotionalManipulation)
	fmt.Fprintf(&b, "_Verified at %s_\n\n", verdict.VerifiedAt.Format("2006-01-02 15:04 UTC"))

	b.WriteString("## Summary\n\n")
	b.WriteString(verdict.Explanation)
	b.WriteString("\n\n")

	if len(verdict.ClaimBreakdown) > 0 {
		b.WriteString("## Claims\n\n")
		b.WriteString("| Claim | Verdict | Confidence | Supports | Refutes | Neutral |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, cv := range verdict.ClaimBreakdown {
			fmt.Fprintf(&b, "| %s | %s | %.0f | %d | %d | %d |\n",
				escapeCell(cv.ClaimText), cv.Verdict, cv.Confidence,
				cv.SupportCount, cv.RefuteCount, cv.NeutralCount)
		}
		b.WriteString("\n")
	}

	if len(verdict.EvidenceCards) > 0 {
		b.WriteString("## Evidence\n\n")
		for _, card := range verdict.EvidenceCards {
			fmt.Fprintf(&b, "### %s: %s\n\n", card.Relationship, card.SourceName)
			fmt.Fprintf(&b, "**Claim:** %s\n\n", card.ClaimText)
			fmt.Fprintf(&b, "> %s\n\n", card.Snippet)
			if card.SourceURL != "" {
				fmt.Fprintf(&b, "[%s](%s)\n\n", card.SourceURL, card.SourceURL)
			}
			for _, d := range card.Discrepancies {
				fmt.Fprintf(&b, "- %s\n", d)
			}
			if len(card.Discrepancies) > 0 {
				b.WriteString("\n")
			}
		}
	}

	if len(verdict.Tone.ManipulativePhrases) > 0 {
		b.WriteString("## Tone\n\n")
		fmt.Fprintf(&b, "Emotional intensity %.2f, sensationalism %.2f, objectivity %.2f.\n\n",
			verdict.Tone.EmotionalIntensity, verdict.Tone.Sensationalism, verdict.Tone.Objectivity)
		b.WriteString("Manipulative phrases detected:\n\n")
		for _, phrase := range verdict.Tone.ManipulativePhrases {
			fmt.Fprintf(&b, "- %q\n", phrase)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by claimlens. Verdicts reflect automated evidence retrieval and are not a substitute for editorial judgment.\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short verdict summary to stdout
func (r *Renderer) RenderSummary(verdict *model.FinalVerdict) {
	fmt.Println()
	fmt.Printf("Verdict:               %s\n", verdict.Verdict)
	fmt.Printf("Confidence:            %.0f/100\n", verdict.ConfidenceScore)
	fmt.Printf("Factual accuracy:      %.0f/100\n", verdict.FactualAccuracy)
	fmt.Printf("Emotional manipulation: %.0f/100\n", verdict.EmotionalManipulation)
	fmt.Printf("Claims checked:        %d\n", len(verdict.ClaimBreakdown))

	counts := make(map[model.ClaimVerdictType]int)
	for _, cv := range verdict.ClaimBreakdown {
		counts[cv.Verdict]++
	}
	if len(verdict.ClaimBreakdown) > 0 {
		fmt.Printf("  TRUE: %d  FALSE: %d  MISLEADING: %d  UNVERIFIED: %d\n",
			counts[model.ClaimTrue], counts[model.ClaimFalse],
			counts[model.ClaimMisleading], counts[model.ClaimUnverified])
	}
	fmt.Println()
	fmt.Println(verdict.Explanation)
}

// RenderReport renders the verdict to the configured outputs
func (p *Pipeline) RenderReport(verdict *model.FinalVerdict, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(verdict, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(verdict, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(verdict)
	return nil
}

// escapeCell makes claim text safe inside a Markdown table cell
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
