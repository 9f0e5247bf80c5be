package srj5

// SurveyCalibrator linearly recalibrates cluster scores against
// standardized self-report instrument totals. Each cluster maps to exactly
// one instrument; clusters whose instrument is absent from the request
// only pass through the weight multiplication.
type SurveyCalibrator struct {
	cfg *Config
}

func NewSurveyCalibrator(cfg *Config) *SurveyCalibrator {
	return &SurveyCalibrator{cfg: cfg}
}

// Calibrate returns a new vector; surveys maps instrument name to total.
func (sc *SurveyCalibrator) Calibrate(scores ScoreVector, surveys map[string]int) ScoreVector {
	out := NewScoreVector()
	for _, c := range Clusters {
		v := scores[c] * sc.cfg.DSMWeights[c]
		if anchor, ok := sc.cfg.Surveys[c]; ok {
			if total, present := surveys[anchor.Instrument]; present {
				z := (float64(total) - anchor.Anchor) / anchor.Scale
				v += sc.cfg.DSMBeta[c] * z
			}
		}
		out[c] = Clip01(v)
	}
	return out
}

// AboveClinicalThreshold reports whether any submitted survey total meets
// its instrument's clinical cutoff. Used by the profile ladder.
func (sc *SurveyCalibrator) AboveClinicalThreshold(surveys map[string]int) bool {
	for _, anchor := range sc.cfg.Surveys {
		if anchor.Threshold <= 0 {
			continue
		}
		if total, ok := surveys[anchor.Instrument]; ok && total >= anchor.Threshold {
			return true
		}
	}
	return false
}
