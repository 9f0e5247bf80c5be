package srj5

// BaselineCalculator converts onboarding questionnaire answers into a
// baseline score vector via the static many-to-many weight table. Weights
// may be negative, so non-positive clusters clip to [-1,1]; the positive
// cluster clips to [0,1] because its contributing weights are never
// negative.
type BaselineCalculator struct {
	cfg *Config
}

func NewBaselineCalculator(cfg *Config) *BaselineCalculator {
	return &BaselineCalculator{cfg: cfg}
}

// Baseline computes the vector from answers (question key -> 0..3). An
// empty or nil answer map yields the zero vector.
func (b *BaselineCalculator) Baseline(answers map[string]int) ScoreVector {
	baseline := NewScoreVector()
	if len(answers) == 0 {
		return baseline
	}

	for key, raw := range answers {
		mapping, ok := b.cfg.OnboardingMapping[key]
		if !ok {
			continue
		}
		score := float64(raw)
		if b.cfg.OnboardingReverse[key] {
			score = b.cfg.OnboardingMax - score
		}
		normalized := clampRange(score, 0, b.cfg.OnboardingMax) / b.cfg.OnboardingMax
		for _, w := range mapping {
			baseline[w.Cluster] += normalized * w.W
		}
	}

	for _, c := range Clusters {
		if c == ClusterPositive {
			baseline[c] = Clip01(baseline[c])
		} else {
			baseline[c] = ClipSym(baseline[c])
		}
	}
	return baseline
}
