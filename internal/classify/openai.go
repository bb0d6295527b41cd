package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/claimlens/claimlens/internal/model"
)

// OpenAI classifies claim/evidence pairs via the Chat Completions API in
// JSON mode. Responses that do not form a valid probability distribution
// are renormalized when close, rejected otherwise.
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewOpenAI creates an OpenAI-backed classifier
func NewOpenAI(cfg model.LLMConfig) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	m := cfg.Model
	if m == "" {
		m = openai.GPT4oMini
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 200
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAI{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     m,
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

// Name returns the classifier name
func (o *OpenAI) Name() string {
	return "openai"
}

const classifySystemPrompt = `You are a fact-checking entailment model. Given a PREMISE (a snippet from a published source) and a HYPOTHESIS (a claim from a news article), estimate how the premise relates to the hypothesis.

Respond with a JSON object containing exactly three keys: "support", "contradict", "neutral". Each value is a probability between 0 and 1, and the three values must sum to 1. Respond with JSON only.`

type classifyResponse struct {
	Support    float64 `json:"support"`
	Contradict float64 `json:"contradict"`
	Neutral    float64 `json:"neutral"`
}

// Classify scores the premise/hypothesis pair
func (o *OpenAI) Classify(ctx context.Context, premise, hypothesis string) (Scores, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	prompt := fmt.Sprintf("PREMISE: %s\n\nHYPOTHESIS: %s", premise, hypothesis)

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   o.maxTokens,
		Temperature: 0, // deterministic scoring
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := o.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return Scores{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Scores{}, fmt.Errorf("no response from OpenAI")
	}

	var parsed classifyResponse
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Scores{}, fmt.Errorf("failed to parse classification: %w", err)
	}

	s := Scores{
		Support:    parsed.Support,
		Contradict: parsed.Contradict,
		Neutral:    parsed.Neutral,
	}
	return normalize(s)
}

// normalize renormalizes a near-valid distribution and rejects anything
// that is not salvageable
func normalize(s Scores) (Scores, error) {
	if s.Support < 0 || s.Contradict < 0 || s.Neutral < 0 {
		return Scores{}, fmt.Errorf("negative probability in classification: %+v", s)
	}
	sum := s.Support + s.Contradict + s.Neutral
	if sum == 0 {
		return Scores{}, fmt.Errorf("zero probability mass in classification")
	}
	if math.Abs(sum-1.0) > 0.1 {
		return Scores{}, fmt.Errorf("classification probabilities sum to %.3f, expected 1.0", sum)
	}
	return Scores{
		Support:    s.Support / sum,
		Contradict: s.Contradict / sum,
		Neutral:    s.Neutral / sum,
	}, nil
}
