package srj5

// Severity tiers for a single cluster score.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
	SeverityAny    = "any"
)

// Profile tiers. Lower numbers are more urgent except 0, which means no
// meaningful signal.
const (
	ProfileNone     = 0
	ProfileCrisis   = 1
	ProfileClinical = 2
	ProfileElevated = 3
)

// ProfileSelector classifies the severity profile and selects the
// matching intervention from the static candidate table.
type ProfileSelector struct {
	cfg *Config
}

func NewProfileSelector(cfg *Config) *ProfileSelector {
	return &ProfileSelector{cfg: cfg}
}

// PickProfile walks the priority ladder; first match wins. surveyHit is
// whether any submitted survey total met its clinical cutoff.
func (p *ProfileSelector) PickProfile(final ScoreVector, sig *ModelSignal, surveyHit bool) int {
	if sig.SelfHarmFlagged() {
		return ProfileCrisis
	}
	negMax := final[ClusterNegLow]
	if final[ClusterNegHigh] > negMax {
		negMax = final[ClusterNegHigh]
	}
	if negMax > p.cfg.ProfileCrisisMax {
		return ProfileCrisis
	}
	_, max := final.Max()
	if surveyHit || max > p.cfg.ProfileClinicalMax {
		return ProfileClinical
	}
	if max > p.cfg.ProfileElevatedMax {
		return ProfileElevated
	}
	return ProfileNone
}

// SeverityLevel maps a score onto the three severity tiers.
func (p *ProfileSelector) SeverityLevel(s float64) string {
	if s <= p.cfg.SeverityLowMax {
		return SeverityLow
	}
	if s <= p.cfg.SeverityMedMax {
		return SeverityMedium
	}
	return SeverityHigh
}

// SelectIntervention picks the dominant cluster's best candidate. At
// night a medium/high neg_low dominant with model-reported sleep evidence
// remaps to sleep; high severity steps down to medium there, medium stays
// medium.
func (p *ProfileSelector) SelectIntervention(final ScoreVector, isNight bool, sig *ModelSignal) InterventionRecord {
	top, score := final.Max()
	sev := p.SeverityLevel(score)

	if isNight && top == ClusterNegLow &&
		(sev == SeverityMedium || sev == SeverityHigh) &&
		len(sig.SleepEvidence()) > 0 {
		top = ClusterSleep
		if sev == SeverityHigh {
			sev = SeverityMedium
		}
	}

	// Safety presets are reserved for the crisis path; the normal
	// selection never picks them on score alone.
	candidates := p.filter(func(r InterventionRecord) bool {
		return !r.SafetyCheck && r.Cluster == top && (r.Severity == sev || r.Severity == SeverityAny)
	})
	if len(candidates) == 0 {
		candidates = p.filter(func(r InterventionRecord) bool { return !r.SafetyCheck && r.Cluster == top })
	}
	if len(candidates) == 0 {
		candidates = p.filter(func(r InterventionRecord) bool { return !r.SafetyCheck })
	}
	if len(candidates) == 0 {
		candidates = p.cfg.Interventions
	}

	best := candidates[0]
	for _, r := range candidates[1:] {
		if r.Priority > best.Priority {
			best = r
		}
	}
	return best
}

// CrisisIntervention builds the hard safety intervention for the given
// dominant negative cluster and preset identifier.
func (p *ProfileSelector) CrisisIntervention(cluster Cluster, presetID string) InterventionRecord {
	return InterventionRecord{
		Cluster:     cluster,
		Severity:    SeverityHigh,
		PresetID:    presetID,
		Priority:    1000,
		SafetyCheck: true,
	}
}

// AnalysisMessage returns the severity-tiered user-facing line for the
// dominant cluster.
func (p *ProfileSelector) AnalysisMessage(final ScoreVector) string {
	top, score := final.Max()
	level := "low"
	if score > 0.7 {
		level = "high"
	} else if score > 0.4 {
		level = "mid"
	}
	return p.cfg.AnalysisMessages[top][level]
}

func (p *ProfileSelector) filter(keep func(InterventionRecord) bool) []InterventionRecord {
	out := []InterventionRecord{}
	for _, r := range p.cfg.Interventions {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
