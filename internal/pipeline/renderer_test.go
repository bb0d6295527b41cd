package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/claimlens/claimlens/internal/model"
)

func sampleVerdict() *model.FinalVerdict {
	return &model.FinalVerdict{
		Verdict:               model.ArticleMisleading,
		ConfidenceScore:       58,
		FactualAccuracy:       61,
		EmotionalManipulation: 40,
		ClaimBreakdown: []model.ClaimVerdict{
			{
				ClaimID:      "claim-1",
				ClaimText:    "Crime rose | by 300 percent",
				Verdict:      model.ClaimMisleading,
				Confidence:   50,
				SupportCount: 1,
				RefuteCount:  1,
				NeutralCount: 0,
			},
		},
		EvidenceCards: []model.EvidenceCard{
			{
				ClaimID:       "claim-1",
				ClaimText:     "Crime rose by 300 percent",
				Snippet:       "The increase is from 2 to 8 incidents.",
				SourceURL:     "https://www.factcheck.org/crime",
				SourceName:    "factcheck.org",
				Relationship:  model.LabelRefutes,
				Discrepancies: []string{"baseline numbers differ"},
			},
		},
		Explanation: "The article mixes accurate figures with missing context.",
		Tone: model.ToneScore{
			EmotionalIntensity:  0.4,
			Sensationalism:      0.4,
			Objectivity:         0.6,
			ManipulativePhrases: []string{"SHOCKING"},
		},
		SourceURL:  "https://example.com/crime-article",
		VerifiedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verdict.json")
	r := NewRenderer(true)

	if err := r.RenderJSON(sampleVerdict(), path); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var got model.FinalVerdict
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.Verdict != model.ArticleMisleading {
		t.Errorf("verdict lost in roundtrip: %s", got.Verdict)
	}
	if len(got.ClaimBreakdown) != 1 || got.ClaimBreakdown[0].ClaimID != "claim-1" {
		t.Errorf("claim breakdown lost in roundtrip: %+v", got.ClaimBreakdown)
	}
	if data[len(data)-1] != '\n' {
		t.Error("expected trailing newline")
	}
}

func TestRenderMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verdict.md")
	r := NewRenderer(true)

	if err := r.RenderMarkdown(sampleVerdict(), path); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	report := string(data)

	for _, want := range []string{
		"# Verification Report",
		"**Verdict:** MISLEADING (confidence 58/100)",
		"**Source:** https://example.com/crime-article",
		"## Summary",
		"## Claims",
		"## Evidence",
		"### REFUTES: factcheck.org",
		"> The increase is from 2 to 8 incidents.",
		"- baseline numbers differ",
		"## Tone",
		"\"SHOCKING\"",
		"Generated by claimlens",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// The pipe in the claim text must not break the table
	if !strings.Contains(report, `Crime rose \| by 300 percent`) {
		t.Error("expected pipe character to be escaped in table cell")
	}
}

func TestRenderMarkdown_NoFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verdict.md")
	r := NewRenderer(false)

	if err := r.RenderMarkdown(sampleVerdict(), path); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "Generated by claimlens") {
		t.Error("footer should be omitted when disabled")
	}
}

func TestRenderMarkdown_MinimalVerdict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verdict.md")
	r := NewRenderer(true)

	minimal := &model.FinalVerdict{
		Verdict:     model.ArticleUnverified,
		Explanation: "The article contains no verifiable claims.",
		VerifiedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := r.RenderMarkdown(minimal, path); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	report, _ := os.ReadFile(path)
	if strings.Contains(string(report), "## Claims") {
		t.Error("claims section should be omitted when empty")
	}
	if strings.Contains(string(report), "## Evidence") {
		t.Error("evidence section should be omitted when empty")
	}
	if !strings.Contains(string(report), "no verifiable claims") {
		t.Error("expected explanation in summary")
	}
}

func TestEscapeCell(t *testing.T) {
	got := escapeCell("a | b\nc")
	if got != `a \| b c` {
		t.Errorf("unexpected escape: %q", got)
	}
}
