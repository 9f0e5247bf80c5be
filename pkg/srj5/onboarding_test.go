package srj5

import (
	"math"
	"testing"
)

func TestBaselineEmptyAnswers(t *testing.T) {
	b := NewBaselineCalculator(DefaultConfig())
	for _, answers := range []map[string]int{nil, {}} {
		got := b.Baseline(answers)
		for _, c := range Clusters {
			if got[c] != 0.0 {
				t.Errorf("baseline[%s] = %v, want 0 for empty answers", c, got[c])
			}
		}
	}
}

func TestBaselineSingleQuestion(t *testing.T) {
	b := NewBaselineCalculator(DefaultConfig())

	// q1 at the scale max contributes its full weights.
	got := b.Baseline(map[string]int{"q1": 3})
	if math.Abs(got[ClusterNegLow]-0.80) > 1e-9 {
		t.Errorf("baseline[neg_low] = %v, want 0.80", got[ClusterNegLow])
	}
	if math.Abs(got[ClusterSleep]-0.10) > 1e-9 {
		t.Errorf("baseline[sleep] = %v, want 0.10", got[ClusterSleep])
	}
	// The negative positive-cluster weight clips at the zero floor.
	if got[ClusterPositive] != 0.0 {
		t.Errorf("baseline[positive] = %v, want clipped to 0", got[ClusterPositive])
	}
}

func TestBaselineReverseCoding(t *testing.T) {
	b := NewBaselineCalculator(DefaultConfig())

	// q7 is reverse-coded: the max answer means doing well, so it
	// contributes nothing.
	high := b.Baseline(map[string]int{"q7": 3})
	for _, c := range Clusters {
		if high[c] != 0.0 {
			t.Errorf("baseline[%s] = %v, want 0 for reverse-coded max", c, high[c])
		}
	}

	low := b.Baseline(map[string]int{"q7": 0})
	if math.Abs(low[ClusterPositive]-0.80) > 1e-9 {
		t.Errorf("baseline[positive] = %v, want 0.80", low[ClusterPositive])
	}
	if math.Abs(low[ClusterNegLow]-0.20) > 1e-9 {
		t.Errorf("baseline[neg_low] = %v, want 0.20", low[ClusterNegLow])
	}
}

func TestBaselineUnknownAndPartialAnswers(t *testing.T) {
	b := NewBaselineCalculator(DefaultConfig())

	got := b.Baseline(map[string]int{"q42": 3, "q6": 3})
	if math.Abs(got[ClusterSleep]-0.90) > 1e-9 {
		t.Errorf("baseline[sleep] = %v, want 0.90 (unknown keys skipped)", got[ClusterSleep])
	}
	if math.Abs(got[ClusterNegLow]-0.10) > 1e-9 {
		t.Errorf("baseline[neg_low] = %v, want 0.10", got[ClusterNegLow])
	}
}

func TestBaselineAccumulatesAcrossQuestions(t *testing.T) {
	b := NewBaselineCalculator(DefaultConfig())

	// q1 and q2 both load on neg_low: 0.80 + 0.85, clipped at 1.
	got := b.Baseline(map[string]int{"q1": 3, "q2": 3})
	if got[ClusterNegLow] != 1.0 {
		t.Errorf("baseline[neg_low] = %v, want clipped to 1", got[ClusterNegLow])
	}
}
