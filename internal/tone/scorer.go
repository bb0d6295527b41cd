package tone

import (
	"regexp"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Scorer measures sensationalism and emotional manipulation in article prose.
// The signal is independent of factual accuracy.
type Scorer struct{}

// NewScorer creates a new tone scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// patternCategories fixes the match order so repeated runs list detected
// phrases identically
var patternCategories = []string{"urgency", "fear", "clickbait", "absolute", "emotional"}

// manipulativePatterns groups manipulative phrase vocabulary by category
var manipulativePatterns = map[string][]string{
	"urgency": {
		"act now", "limited time", "hurry", "don't miss out", "last chance",
		"urgent", "immediately", "right now", "before it's too late",
	},
	"fear": {
		"shocking", "terrifying", "horrifying", "devastating", "catastrophic",
		"alarming", "frightening", "scary", "dangerous", "threat",
	},
	"clickbait": {
		"you won't believe", "what happens next", "will shock you",
		"this one trick", "doctors hate", "they don't want you to know",
		"the truth about", "secret", "revealed", "exposed",
	},
	"absolute": {
		"everyone knows", "nobody can deny", "always", "never",
		"all experts agree", "undeniable", "proven fact", "absolutely",
	},
	"emotional": {
		"heartbreaking", "outrageous", "unbelievable", "incredible",
		"amazing", "stunning", "mind-blowing",
	},
}

// emotionalWords feed the emotional-intensity density measure
var emotionalWords = map[string]bool{
	"love": true, "hate": true, "fear": true, "angry": true, "furious": true,
	"enraged": true, "terrified": true, "horrified": true, "shocked": true,
	"outraged": true, "disgusted": true, "thrilled": true, "ecstatic": true,
	"happy": true, "sad": true, "worried": true, "concerned": true,
	"excited": true, "disappointed": true, "frustrated": true, "annoyed": true,
	"pleased": true, "upset": true, "anxious": true, "nervous": true,
	"very": true, "extremely": true, "incredibly": true, "absolutely": true,
	"totally": true, "completely": true,
}

// sensationalistWords feed the sensationalism word factor
var sensationalistWords = map[string]bool{
	"shocking": true, "unbelievable": true, "incredible": true,
	"amazing": true, "stunning": true, "mind-blowing": true,
	"explosive": true, "bombshell": true, "devastating": true,
	"best": true, "worst": true, "greatest": true, "most": true,
	"least": true, "biggest": true, "smallest": true,
	"crisis": true, "disaster": true, "catastrophe": true,
	"emergency": true, "chaos": true, "panic": true,
}

// Score analyzes the text and always returns a complete ToneScore; neutral
// text scores near-zero manipulation.
func (s *Scorer) Score(articleText string) model.ToneScore {
	words := strings.Fields(strings.ToLower(articleText))
	if len(words) == 0 {
		return model.ToneScore{
			Objectivity:         1.0,
			ManipulativePhrases: []string{},
		}
	}

	emotionalCount := 0
	sensationalistCount := 0
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?\"'()")
		if emotionalWords[w] {
			emotionalCount++
		}
		if sensationalistWords[w] {
			sensationalistCount++
		}
	}

	intensity := float64(emotionalCount) / float64(len(words)) * 5.0
	if intensity > 1.0 {
		intensity = 1.0
	}

	phrases := DetectManipulativePhrases(articleText)

	phraseFactor := float64(len(phrases)) / 10.0
	if phraseFactor > 1.0 {
		phraseFactor = 1.0
	}
	wordFactor := float64(sensationalistCount) / float64(len(words)) * 10.0
	if wordFactor > 1.0 {
		wordFactor = 1.0
	}

	sensationalism := phraseFactor*0.6 + wordFactor*0.4
	if sensationalism > 1.0 {
		sensationalism = 1.0
	}

	return model.ToneScore{
		EmotionalIntensity:  intensity,
		Sensationalism:      sensationalism,
		Objectivity:         1.0 - sensationalism,
		ManipulativePhrases: phrases,
	}
}

// DetectManipulativePhrases returns every manipulative phrase matched in the
// text, in original casing, deduplicated case-insensitively.
func DetectManipulativePhrases(text string) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	detected := []string{}

	for _, category := range patternCategories {
		for _, phrase := range manipulativePatterns[category] {
			if !strings.Contains(lower, phrase) {
				continue
			}
			re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(phrase))
			for _, match := range re.FindAllString(text, -1) {
				key := strings.ToLower(match)
				if !seen[key] {
					seen[key] = true
					detected = append(detected, match)
				}
			}
		}
	}
	return detected
}
