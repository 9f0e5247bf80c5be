package srj5

import (
	"math"
	"testing"
)

func TestGScore(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name  string
		final ScoreVector
		want  float64
	}{
		{"zero vector is neutral", NewScoreVector(), 0.5},
		{"purely positive day", vec(map[Cluster]float64{ClusterPositive: 1.0}), 0.35},
		{"everything negative saturates", vec(map[Cluster]float64{
			ClusterNegHigh: 1.0, ClusterNegLow: 1.0, ClusterSleep: 1.0, ClusterADHD: 1.0,
		}), 1.0},
		{"mixed", vec(map[Cluster]float64{ClusterNegLow: 0.5, ClusterPositive: 0.5}), 0.65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GScore(cfg, tt.final)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("GScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGScoreRounding(t *testing.T) {
	cfg := DefaultConfig()
	got := GScore(cfg, vec(map[Cluster]float64{ClusterNegLow: 0.333}))
	want := math.Round((0.333*0.9+1)/2*1000) / 1000
	if got != want {
		t.Errorf("GScore = %v, want three decimals %v", got, want)
	}
}

func TestPCAProxy(t *testing.T) {
	cfg := DefaultConfig()

	got := PCAProxy(cfg, NewScoreVector())
	if got["pc1"] != 0.0 || got["pc2"] != 0.5 {
		t.Errorf("zero vector projects to %v, want pc1 0 and pc2 0.5", got)
	}

	// A strongly positive vector pulls pc1 negative.
	got = PCAProxy(cfg, vec(map[Cluster]float64{ClusterPositive: 1.0}))
	if got["pc1"] >= 0 {
		t.Errorf("pc1 = %v, want negative for a positive-dominant vector", got["pc1"])
	}
	if got["pc2"] < 0 || got["pc2"] > 1 {
		t.Errorf("pc2 = %v, want within [0,1]", got["pc2"])
	}
}
