package srj5

import "strings"

// RuleOutcomeKind tags the two possible results of the rule scorer.
type RuleOutcomeKind string

const (
	// OutcomeHardHit means a hard-hit keyword short-circuited scoring into
	// a one-hot vector; the lexicon pass never ran.
	OutcomeHardHit RuleOutcomeKind = "HARD_HIT"
	// OutcomeLexicon means the full lexicon pass produced the scores.
	OutcomeLexicon RuleOutcomeKind = "LEXICON"
)

// RuleOutcome is the result of rule-based scoring. The Kind tag makes the
// hard-hit short-circuit an explicit branch instead of an early return
// buried in iteration order.
type RuleOutcome struct {
	Kind     RuleOutcomeKind `json:"kind"`
	Cluster  Cluster         `json:"cluster,omitempty"` // hard-hit cluster
	Token    string          `json:"token,omitempty"`   // hard-hit token
	Scores   ScoreVector     `json:"scores"`
	Evidence EvidenceMap     `json:"evidence"`
	Diag     RuleDiagnostics `json:"diag"`
}

// RuleDiagnostics records what the scorer saw but did not score.
type RuleDiagnostics struct {
	Emphasis []string `json:"emphasis,omitempty"`
	Negation bool     `json:"negation"`
	Ignored  []string `json:"ignored,omitempty"`
}

// RuleScorer scores text against the hard-hit keyword table and the
// cluster lexicons. It is stateless; all tables come from the injected
// read-only config.
type RuleScorer struct {
	cfg *Config
}

func NewRuleScorer(cfg *Config) *RuleScorer {
	return &RuleScorer{cfg: cfg}
}

// Score runs the hard-hit pass and, if nothing short-circuits, the lexicon
// pass with emphasis boosts, negation clearing and evidence enforcement.
func (r *RuleScorer) Score(text string, tokens []string) RuleOutcome {
	diag := RuleDiagnostics{}

	emphasisIdx := []int{}
	for i, tok := range tokens {
		if contains(r.cfg.EmphasisWords, tok) {
			emphasisIdx = append(emphasisIdx, i)
			diag.Emphasis = append(diag.Emphasis, tok)
		}
	}
	for _, neg := range r.cfg.NegationWords {
		if strings.Contains(text, neg) {
			diag.Negation = true
			break
		}
	}

	// Hard-hit pass: first matching token wins. Clusters order breaks ties
	// within a token (neg_low before neg_high).
	for _, tok := range tokens {
		for _, c := range Clusters {
			if contains(r.cfg.HardHitKeywords[c], tok) {
				scores := NewScoreVector()
				scores[c] = 1.0
				evidence := NewEvidenceMap()
				evidence[c] = []string{tok}
				return RuleOutcome{
					Kind:     OutcomeHardHit,
					Cluster:  c,
					Token:    tok,
					Scores:   scores,
					Evidence: evidence,
					Diag:     diag,
				}
			}
		}
	}

	scores := NewScoreVector()
	evidence := NewEvidenceMap()

	type match struct {
		cluster Cluster
		index   int // nearest token index, -1 if unknown
	}
	matched := map[string]match{}

	// Token-level lexicon membership.
	for i, tok := range tokens {
		for _, c := range Clusters {
			if contains(r.cfg.Lexicon[c], tok) {
				if _, seen := matched[tok]; !seen {
					matched[tok] = match{cluster: c, index: i}
				}
			}
		}
	}

	// Keywords that the tokenizer splits apart still count when they occur
	// verbatim in the raw text. Their position is approximated by walking
	// cumulative token lengths.
	for _, c := range Clusters {
		for _, kw := range r.cfg.Lexicon[c] {
			if _, seen := matched[kw]; seen {
				continue
			}
			pos := strings.Index(text, kw)
			if pos < 0 {
				continue
			}
			idx := -1
			cum := 0
			for j, tok := range tokens {
				if cum >= pos {
					idx = j
					break
				}
				cum += len(tok) + 1
			}
			matched[kw] = match{cluster: c, index: idx}
		}
	}

	hasEmphasis := len(emphasisIdx) > 0
	for kw, m := range matched {
		score := r.cfg.RuleBaseScore
		if hasEmphasis && m.index >= 0 {
			boost := r.cfg.GlobalBoost
			nearest := -1
			for _, e := range emphasisIdx {
				d := m.index - e
				if d < 0 {
					d = -d
				}
				if nearest < 0 || d < nearest {
					nearest = d
				}
			}
			boost *= 1.0 + r.cfg.DistK/float64(nearest+1)
			score *= boost
		}
		// Per-cluster score is the max over matching keywords, not a sum.
		if score > scores[m.cluster] {
			scores[m.cluster] = score
		}
		if !contains(evidence[m.cluster], kw) {
			evidence[m.cluster] = append(evidence[m.cluster], kw)
		}
	}

	for _, tok := range tokens {
		if contains(r.cfg.EmphasisWords, tok) {
			continue
		}
		covered := false
		for kw := range matched {
			if kw == tok || strings.Contains(kw, tok) || strings.Contains(tok, kw) {
				covered = true
				break
			}
		}
		if !covered {
			diag.Ignored = append(diag.Ignored, tok)
		}
	}

	// Negation clears the positive cluster only.
	if diag.Negation {
		scores[ClusterPositive] = 0.0
		evidence[ClusterPositive] = []string{}
	}

	// No evidence, no score.
	for _, c := range Clusters {
		if len(evidence[c]) == 0 {
			scores[c] = 0.0
		}
	}

	return RuleOutcome{
		Kind:     OutcomeLexicon,
		Scores:   scores,
		Evidence: evidence,
		Diag:     diag,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
