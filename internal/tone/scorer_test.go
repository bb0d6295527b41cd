package tone

import (
	"reflect"
	"testing"
)

func TestScore_NeutralText(t *testing.T) {
	s := NewScorer()
	score := s.Score("The committee published its quarterly report on Tuesday. Revenue figures matched projections.")

	if score.EmotionalIntensity != 0 {
		t.Errorf("expected zero emotional intensity for neutral text, got %f", score.EmotionalIntensity)
	}
	if score.Sensationalism != 0 {
		t.Errorf("expected zero sensationalism for neutral text, got %f", score.Sensationalism)
	}
	if score.Objectivity != 1.0 {
		t.Errorf("expected objectivity 1.0, got %f", score.Objectivity)
	}
	if len(score.ManipulativePhrases) != 0 {
		t.Errorf("expected no manipulative phrases, got %v", score.ManipulativePhrases)
	}
}

func TestScore_EmptyText(t *testing.T) {
	s := NewScorer()
	score := s.Score("")

	if score.Objectivity != 1.0 {
		t.Errorf("expected objectivity 1.0 for empty text, got %f", score.Objectivity)
	}
	if score.ManipulativePhrases == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestScore_SensationalText(t *testing.T) {
	s := NewScorer()
	text := "SHOCKING bombshell! You won't believe this devastating crisis. Act now before it's too late! Doctors hate this one trick. Absolutely unbelievable chaos, everyone knows the truth about this disaster."

	score := s.Score(text)
	if score.Sensationalism <= 0.5 {
		t.Errorf("expected high sensationalism, got %f", score.Sensationalism)
	}
	if score.EmotionalIntensity <= 0 {
		t.Errorf("expected positive emotional intensity, got %f", score.EmotionalIntensity)
	}
	if len(score.ManipulativePhrases) < 5 {
		t.Errorf("expected at least 5 manipulative phrases, got %d: %v",
			len(score.ManipulativePhrases), score.ManipulativePhrases)
	}
}

func TestScore_ObjectivityComplement(t *testing.T) {
	s := NewScorer()
	score := s.Score("This shocking revelation is absolutely devastating for everyone involved.")

	if got := score.Sensationalism + score.Objectivity; got < 0.999 || got > 1.001 {
		t.Errorf("sensationalism + objectivity = %f, want 1.0", got)
	}
}

func TestScore_Bounds(t *testing.T) {
	s := NewScorer()
	texts := []string{
		"shocking shocking shocking shocking shocking",
		"very very very extremely extremely furious terrified",
		"a perfectly calm sentence",
	}
	for _, text := range texts {
		score := s.Score(text)
		for name, v := range map[string]float64{
			"intensity":      score.EmotionalIntensity,
			"sensationalism": score.Sensationalism,
			"objectivity":    score.Objectivity,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s = %f out of [0,1] for %q", name, v, text)
			}
		}
	}
}

func TestDetectManipulativePhrases_OriginalCasing(t *testing.T) {
	got := DetectManipulativePhrases("This Will Shock You: the secret is out.")

	found := map[string]bool{}
	for _, p := range got {
		found[p] = true
	}
	if !found["Will Shock You"] {
		t.Errorf("expected original casing 'Will Shock You', got %v", got)
	}
	if !found["secret"] {
		t.Errorf("expected 'secret' to be detected, got %v", got)
	}
}

func TestDetectManipulativePhrases_DedupeCaseInsensitive(t *testing.T) {
	got := DetectManipulativePhrases("shocking news is shocking")
	if len(got) != 1 {
		t.Errorf("expected one deduplicated phrase, got %v", got)
	}
}

func TestDetectManipulativePhrases_Deterministic(t *testing.T) {
	text := "A shocking secret revealed: act now, everyone knows this heartbreaking truth about urgent threats."

	first := DetectManipulativePhrases(text)
	for i := 0; i < 20; i++ {
		if got := DetectManipulativePhrases(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("phrase order varies between runs: %v vs %v", got, first)
		}
	}
}
