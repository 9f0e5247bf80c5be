package srj5

import (
	"math"
	"testing"
)

func TestCalibratePassthroughWithoutSurveys(t *testing.T) {
	sc := NewSurveyCalibrator(DefaultConfig())
	scores := NewScoreVector()
	scores[ClusterNegLow] = 0.5

	got := sc.Calibrate(scores, nil)
	if got[ClusterNegLow] != 0.5 {
		t.Errorf("score[neg_low] = %v, want unchanged 0.5", got[ClusterNegLow])
	}
}

func TestCalibrateShiftsByZScore(t *testing.T) {
	sc := NewSurveyCalibrator(DefaultConfig())
	scores := NewScoreVector()
	scores[ClusterNegLow] = 0.5
	scores[ClusterNegHigh] = 0.5

	// phq9 anchor 10, scale 10: a total of 20 is z=+1, a total of 0 is z=-1.
	got := sc.Calibrate(scores, map[string]int{"phq9": 20})
	if math.Abs(got[ClusterNegLow]-0.6) > 1e-9 {
		t.Errorf("score[neg_low] = %v, want 0.6 (beta 0.1 * z 1)", got[ClusterNegLow])
	}
	if got[ClusterNegHigh] != 0.5 {
		t.Errorf("score[neg_high] = %v, want unchanged without gad7", got[ClusterNegHigh])
	}

	got = sc.Calibrate(scores, map[string]int{"phq9": 0})
	if math.Abs(got[ClusterNegLow]-0.4) > 1e-9 {
		t.Errorf("score[neg_low] = %v, want 0.4 on a low total", got[ClusterNegLow])
	}
}

func TestCalibrateClipsToUnit(t *testing.T) {
	sc := NewSurveyCalibrator(DefaultConfig())
	scores := NewScoreVector()
	scores[ClusterNegLow] = 0.98

	got := sc.Calibrate(scores, map[string]int{"phq9": 27})
	if got[ClusterNegLow] != 1.0 {
		t.Errorf("score[neg_low] = %v, want clipped to 1", got[ClusterNegLow])
	}

	scores[ClusterNegLow] = 0.02
	got = sc.Calibrate(scores, map[string]int{"phq9": 0})
	if got[ClusterNegLow] != 0.0 {
		t.Errorf("score[neg_low] = %v, want clipped to 0", got[ClusterNegLow])
	}
}

func TestAboveClinicalThreshold(t *testing.T) {
	sc := NewSurveyCalibrator(DefaultConfig())
	tests := []struct {
		name    string
		surveys map[string]int
		want    bool
	}{
		{"no surveys", nil, false},
		{"phq9 at cutoff", map[string]int{"phq9": 10}, true},
		{"phq9 below cutoff", map[string]int{"phq9": 9}, false},
		{"gad7 above cutoff", map[string]int{"gad7": 15}, true},
		{"psqi has no cutoff", map[string]int{"psqi": 21}, false},
		{"mixed", map[string]int{"psqi": 21, "gad7": 11}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sc.AboveClinicalThreshold(tt.surveys); got != tt.want {
				t.Errorf("AboveClinicalThreshold = %v, want %v", got, tt.want)
			}
		})
	}
}
