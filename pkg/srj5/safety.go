package srj5

import (
	"fmt"
	"regexp"
	"strings"
)

// SafetyInput bundles what a detector may look at. Signal is nil on the
// pre-model pass; TokensDegraded is set when the tokenizer collaborator
// failed and Tokens is therefore empty rather than genuinely token-free.
type SafetyInput struct {
	Text           string
	Tokens         []string
	TokensDegraded bool
	Signal         *ModelSignal
}

// SafetyAssessment is the detector verdict plus everything needed to
// explain it in the trace.
type SafetyAssessment struct {
	Triggered         bool        `json:"triggered"`
	RegexMatches      []string    `json:"regex_matches,omitempty"`
	ComboMatches      []string    `json:"combo_matches,omitempty"`
	FigurativeMatches []string    `json:"figurative_matches,omitempty"`
	IntentFlag        bool        `json:"intent_flag"`
	Suppressed        bool        `json:"suppressed"`
	Degraded          bool        `json:"degraded"`
	Override          ScoreVector `json:"override,omitempty"`
}

// SafetyDetector is the pluggable crisis-language strategy. The regex
// strategy covers explicit phrasing only; the morph strategy adds
// token-combination windows on top. Both honor figurative suppression.
type SafetyDetector interface {
	Evaluate(in SafetyInput) SafetyAssessment
}

// --- Regex strategy ---

type RegexDetector struct {
	crisis     []*regexp.Regexp
	figurative []*regexp.Regexp
	crisisMin  float64
}

func NewRegexDetector(cfg *Config) (*RegexDetector, error) {
	crisis, err := compileAll(cfg.SafetyRegex)
	if err != nil {
		return nil, fmt.Errorf("compile safety regex: %w", err)
	}
	figurative, err := compileAll(cfg.SafetyFigurative)
	if err != nil {
		return nil, fmt.Errorf("compile figurative regex: %w", err)
	}
	return &RegexDetector{crisis: crisis, figurative: figurative, crisisMin: cfg.CrisisScoreMin}, nil
}

func (d *RegexDetector) Evaluate(in SafetyInput) SafetyAssessment {
	a := SafetyAssessment{
		RegexMatches:      findMatches(d.crisis, in.Text),
		FigurativeMatches: findMatches(d.figurative, in.Text),
		IntentFlag:        in.Signal.SelfHarmFlagged(),
	}
	hit := len(a.RegexMatches) > 0 || a.IntentFlag
	a.Suppressed = hit && len(a.FigurativeMatches) > 0
	a.Triggered = hit && !a.Suppressed
	if a.Triggered {
		a.Override = crisisOverride(d.crisisMin)
	}
	return a
}

// --- Morph strategy (regex + token combinations) ---

type MorphDetector struct {
	regex      *RegexDetector
	lemmas     []string
	combos     [][]string
	failClosed bool
}

// NewMorphDetector builds the full detector. failClosed decides what a
// detector-internal failure (tokenizer unavailable, so the combination
// sub-detector cannot run) counts as: true treats it as a hit, false as a
// miss. See the error-handling notes before flipping this.
func NewMorphDetector(cfg *Config, failClosed bool) (*MorphDetector, error) {
	rd, err := NewRegexDetector(cfg)
	if err != nil {
		return nil, err
	}
	return &MorphDetector{
		regex:      rd,
		lemmas:     cfg.SafetyLemmas,
		combos:     cfg.SafetyCombos,
		failClosed: failClosed,
	}, nil
}

func (d *MorphDetector) Evaluate(in SafetyInput) SafetyAssessment {
	a := d.regex.Evaluate(in)
	a.Triggered = false // recompute below with the combo signal included

	comboHit := false
	if in.TokensDegraded {
		a.Degraded = true
		comboHit = d.failClosed
	} else {
		a.ComboMatches = d.detectCombos(in.Tokens)
		comboHit = len(a.ComboMatches) > 0
	}

	hit := len(a.RegexMatches) > 0 || comboHit || a.IntentFlag
	a.Suppressed = hit && len(a.FigurativeMatches) > 0
	a.Triggered = hit && !a.Suppressed
	if a.Triggered {
		a.Override = crisisOverride(d.regex.crisisMin)
	} else {
		a.Override = nil
	}
	return a
}

func (d *MorphDetector) detectCombos(tokens []string) []string {
	hits := []string{}
	present := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		present[t] = true
	}

	for _, t := range tokens {
		if contains(d.lemmas, t) && !contains(hits, t) {
			hits = append(hits, t)
		}
	}

	for _, combo := range d.combos {
		all := true
		for _, part := range combo {
			if !present[part] {
				all = false
				break
			}
		}
		if all {
			hits = append(hits, strings.Join(combo, "+"))
		}
	}

	// Positional windows: a "want" token right after a die-stem, or the
	// live-negated sequence (살-고-싶-지-않).
	for i := 0; i+2 < len(tokens); i++ {
		if strings.Contains(tokens[i], "죽") &&
			(tokens[i+1] == "고" || tokens[i+1] == "고요") &&
			strings.Contains(tokens[i+2], "싶") {
			hits = append(hits, tokens[i]+"+"+tokens[i+1]+"+"+tokens[i+2])
		}
	}
	for i := 0; i+4 < len(tokens); i++ {
		if strings.Contains(tokens[i], "살") &&
			(tokens[i+1] == "고" || tokens[i+1] == "고요") &&
			strings.Contains(tokens[i+2], "싶") &&
			tokens[i+3] == "지" &&
			(strings.Contains(tokens[i+4], "않") || strings.Contains(tokens[i+4], "아니")) {
			hits = append(hits, "살+고+싶+지+않")
		}
	}

	return hits
}

// crisisOverride is the vector forced on a triggered assessment: the
// low-arousal negative cluster pinned high, everything else zeroed.
func crisisOverride(min float64) ScoreVector {
	s := NewScoreVector()
	s[ClusterNegLow] = min
	return s
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func findMatches(res []*regexp.Regexp, text string) []string {
	hits := []string{}
	for _, re := range res {
		hits = append(hits, re.FindAllString(text, -1)...)
	}
	return hits
}
