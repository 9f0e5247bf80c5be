package srj5

import (
	"math"
	"testing"
)

func TestMetaAdjustIcon(t *testing.T) {
	m := NewMetaAdjuster(DefaultConfig())
	base := NewScoreVector()
	base[ClusterNegHigh] = 0.3

	got := m.Adjust(base, "angry", nil, nil, "")
	if math.Abs(got[ClusterNegHigh]-0.5) > 1e-9 {
		t.Errorf("score[neg_high] = %v, want 0.5 after icon bump", got[ClusterNegHigh])
	}
	if base[ClusterNegHigh] != 0.3 {
		t.Error("input vector was mutated")
	}

	unknown := m.Adjust(base, "confetti", nil, nil, "")
	if unknown[ClusterNegHigh] != 0.3 {
		t.Errorf("unknown icon changed the score to %v", unknown[ClusterNegHigh])
	}
}

func TestMetaAdjustIntensity(t *testing.T) {
	m := NewMetaAdjuster(DefaultConfig())
	base := NewScoreVector()
	base[ClusterNegLow] = 0.4
	base[ClusterPositive] = 0.4

	ten := 10.0
	got := m.Adjust(base, "", &ten, nil, "")
	if math.Abs(got[ClusterNegLow]-0.6) > 1e-9 {
		t.Errorf("score[neg_low] = %v, want 0.6 at max intensity", got[ClusterNegLow])
	}
	if got[ClusterPositive] != 0.4 {
		t.Errorf("score[positive] = %v, intensity must not touch it", got[ClusterPositive])
	}

	half := 5.0
	got = m.Adjust(base, "", &half, nil, "")
	if math.Abs(got[ClusterNegLow]-0.5) > 1e-9 {
		t.Errorf("score[neg_low] = %v, want 0.5 at half intensity", got[ClusterNegLow])
	}
}

func TestMetaAdjustNightBoost(t *testing.T) {
	m := NewMetaAdjuster(DefaultConfig())
	base := NewScoreVector()
	base[ClusterSleep] = 0.3

	got := m.Adjust(base, "", nil, []string{"night"}, "")
	if math.Abs(got[ClusterSleep]-0.5) > 1e-9 {
		t.Errorf("score[sleep] = %v, want 0.5 with night context", got[ClusterSleep])
	}

	got = m.Adjust(base, "", nil, nil, "2025-11-03T23:30:00+09:00")
	if math.Abs(got[ClusterSleep]-0.5) > 1e-9 {
		t.Errorf("score[sleep] = %v, want 0.5 at 23:30", got[ClusterSleep])
	}

	got = m.Adjust(base, "", nil, nil, "2025-11-03T12:00:00+09:00")
	if got[ClusterSleep] != 0.3 {
		t.Errorf("score[sleep] = %v, daytime must not boost", got[ClusterSleep])
	}
}

func TestIsNight(t *testing.T) {
	m := NewMetaAdjuster(DefaultConfig())
	tests := []struct {
		name      string
		contexts  []string
		timestamp string
		want      bool
	}{
		{"explicit tag", []string{"commute", "NIGHT"}, "", true},
		{"late evening", nil, "2025-11-03T22:00:00Z", true},
		{"early morning", nil, "2025-11-03T06:59:00Z", true},
		{"seven am boundary", nil, "2025-11-03T07:00:00Z", false},
		{"afternoon", nil, "2025-11-03T15:00:00Z", false},
		{"unparseable timestamp", nil, "yesterday evening", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsNight(tt.contexts, tt.timestamp); got != tt.want {
				t.Errorf("IsNight = %v, want %v", got, tt.want)
			}
		})
	}
}
