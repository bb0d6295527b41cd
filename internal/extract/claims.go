package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/claimlens/claimlens/internal/model"
)

// ClaimExtractor proposes candidate claims from article text. With an LLM
// configured it asks the model for atomic claims; otherwise, or on any
// failure, it falls back to rule-based sentence extraction. It never fails
// hard: an empty candidate list is a valid outcome.
type ClaimExtractor struct {
	client    *openai.Client
	model     string
	maxTokens int
	maxClaims int
}

// NewClaimExtractor creates an extractor. A nil or keyless config disables
// the LLM path.
func NewClaimExtractor(cfg model.LLMConfig, maxClaims int) *ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = 10
	}

	e := &ClaimExtractor{
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		maxClaims: maxClaims,
	}

	if cfg.Provider != "" && cfg.APIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
		e.client = openai.NewClientWithConfig(clientConfig)
	}
	return e
}

// Extract returns candidate claims for the article. LLM errors degrade to
// the rule-based path rather than propagating.
func (e *ClaimExtractor) Extract(ctx context.Context, articleText string) ([]model.CandidateClaim, error) {
	articleText = strings.TrimSpace(articleText)
	if articleText == "" {
		return nil, nil
	}

	if e.client != nil {
		candidates, err := e.extractWithLLM(ctx, articleText)
		if err == nil && len(candidates) > 0 {
			return candidates, nil
		}
		if err != nil {
			fmt.Printf("Warning: LLM claim extraction failed, using rule-based fallback: %v\n", err)
		}
	}

	return RuleBasedCandidates(articleText), nil
}

func (e *ClaimExtractor) extractWithLLM(ctx context.Context, articleText string) ([]model.CandidateClaim, error) {
	m := e.model
	if m == "" {
		m = openai.GPT4oMini
	}
	maxTokens := e.maxTokens
	if maxTokens == 0 {
		maxTokens = 1500
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     m,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildExtractionPrompt(articleText, e.maxClaims),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	return parseClaimBlocks(resp.Choices[0].Message.Content), nil
}

func buildExtractionPrompt(articleText string, maxClaims int) string {
	return fmt.Sprintf(`Extract up to %d atomic, independently verifiable factual claims from the article below.

Rules:
1. Each claim must be a single fact that can be checked against external sources.
2. DO NOT extract opinions, subjective statements, or predictions.
3. Keep each claim self-contained (resolve pronouns and references).
4. Rate each claim's importance to the article's main point from 0.0 to 1.0.

Format each claim exactly as:
CLAIM: <claim text>
IMPORTANCE: <0.0-1.0>
CONTEXT: <the sentence(s) the claim came from>

Article:
%s`, maxClaims, articleText)
}

var (
	claimLineRe      = regexp.MustCompile(`(?i)CLAIM:\s*(.+)`)
	importanceLineRe = regexp.MustCompile(`(?i)IMPORTANCE:\s*([-\d.]+)`)
	contextLineRe    = regexp.MustCompile(`(?i)CONTEXT:\s*(.+)`)
)

// parseClaimBlocks parses the CLAIM/IMPORTANCE/CONTEXT response format.
// The importance value is advisory only: ranking recomputes it from the
// article text, so a missing or malformed number is simply ignored.
func parseClaimBlocks(response string) []model.CandidateClaim {
	var candidates []model.CandidateClaim

	blocks := strings.Split(response, "CLAIM:")
	for _, block := range blocks[1:] {
		block = "CLAIM:" + block

		claimMatch := claimLineRe.FindStringSubmatch(block)
		if claimMatch == nil {
			continue
		}
		text := strings.TrimSpace(claimMatch[1])
		if text == "" {
			continue
		}

		// Validate the importance line when present, discard garbage blocks
		if m := importanceLineRe.FindStringSubmatch(block); m != nil {
			if _, err := strconv.ParseFloat(m[1], 64); err != nil {
				continue
			}
		}

		context := ""
		if m := contextLineRe.FindStringSubmatch(block); m != nil {
			context = strings.TrimSpace(m[1])
		}

		candidates = append(candidates, model.CandidateClaim{
			Text:    text,
			Context: context,
		})
	}
	return candidates
}

// RuleBasedCandidates splits the article into sentences and proposes each
// one as a candidate, with neighbor sentences as context. Filtering happens
// downstream in the ranker.
func RuleBasedCandidates(articleText string) []model.CandidateClaim {
	sentences := SplitSentences(articleText)

	candidates := make([]model.CandidateClaim, 0, len(sentences))
	for i, sentence := range sentences {
		var contextParts []string
		if i > 0 {
			contextParts = append(contextParts, sentences[i-1])
		}
		contextParts = append(contextParts, sentence)
		if i < len(sentences)-1 {
			contextParts = append(contextParts, sentences[i+1])
		}

		candidates = append(candidates, model.CandidateClaim{
			Text:    sentence,
			Context: strings.Join(contextParts, " "),
		})
	}
	return candidates
}
