package srj5

import "math"

// GScore collapses a final vector into the single wellness scalar:
// weighted sum over clusters (positive weighted negatively), rescaled
// from [-1,1] to [0,1] and rounded to three decimals.
func GScore(cfg *Config, final ScoreVector) float64 {
	g := 0.0
	for _, c := range Clusters {
		g += final[c] * cfg.GScoreWeights[c]
	}
	return round3(Clip01((g + 1.0) / 2.0))
}

// PCAProxy projects the final vector onto the two fixed proxy components.
// pc1 stays in [-1,1]; pc2 is rescaled to [0,1] like the G-score.
func PCAProxy(cfg *Config, final ScoreVector) map[string]float64 {
	pc1, pc2 := 0.0, 0.0
	for c, w := range cfg.PCAProxy["pc1"] {
		pc1 += final[c] * w
	}
	for c, w := range cfg.PCAProxy["pc2"] {
		pc2 += final[c] * w
	}
	return map[string]float64{
		"pc1": round3(ClipSym(pc1)),
		"pc2": round3(Clip01((pc2 + 1.0) / 2.0)),
	}
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
