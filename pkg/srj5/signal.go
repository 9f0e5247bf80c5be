package srj5

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Intent levels reported by the model collaborator.
const (
	IntentNone     = "none"
	IntentPossible = "possible"
	IntentLikely   = "likely"
)

// ModelSignal is the validated structured output of the model
// collaborator. A nil *ModelSignal anywhere in the pipeline means the
// signal is absent (call skipped, timed out, or failed validation) and is
// never an error.
type ModelSignal struct {
	Intensity     map[Cluster]float64 `json:"intensity"`
	Frequency     map[Cluster]float64 `json:"frequency"`
	EvidenceSpans EvidenceMap         `json:"evidence_spans"`
	DSMHits       map[Cluster][]string `json:"dsm_hits"`
	Intent        IntentRecord        `json:"intent"`
	IronyNegation bool                `json:"irony_or_negation"`
	ValenceHint   float64             `json:"valence_hint"`
	ArousalHint   float64             `json:"arousal_hint"`
	Confidence    float64             `json:"confidence"`
}

type IntentRecord struct {
	SelfHarm  string `json:"self_harm"`
	OtherHarm string `json:"other_harm"`
}

// SelfHarmFlagged reports whether the model marked self-harm intent as
// possible or likely. Safe on a nil receiver.
func (s *ModelSignal) SelfHarmFlagged() bool {
	if s == nil {
		return false
	}
	return s.Intent.SelfHarm == IntentPossible || s.Intent.SelfHarm == IntentLikely
}

// SelfHarm returns the intent level, IntentNone on a nil receiver.
func (s *ModelSignal) SelfHarm() string {
	if s == nil {
		return IntentNone
	}
	return s.Intent.SelfHarm
}

// SleepEvidence returns the model's sleep evidence spans, nil-safe.
func (s *ModelSignal) SleepEvidence() []string {
	if s == nil {
		return nil
	}
	return s.EvidenceSpans[ClusterSleep]
}

// dsmCodePattern is the closed survey-item vocabulary the contract allows.
var dsmCodePattern = regexp.MustCompile(`^(PHQ9_Q[1-9]|BAT_Q[1-4]|GAD7_Q[1-7]|PSQI_Q[1-7]|ASRS_Q[1-6]|RSES_Q([1-9]|10))$`)

// ParseModelSignal decodes and defensively validates a raw model response
// against the collaborator contract. The model is a black box: evidence
// spans that are not verbatim substrings of the input are dropped, intent
// values outside the closed set collapse to "none", numeric fields are
// clamped, and clusters left without valid evidence lose their intensity
// and frequency. A non-nil error means the signal must be treated as
// absent, never as a pipeline failure.
func ParseModelSignal(raw string, inputText string) (*ModelSignal, error) {
	content := strings.TrimSpace(raw)
	// Models occasionally wrap JSON in a markdown fence despite the
	// instruction contract.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var sig ModelSignal
	if err := json.Unmarshal([]byte(content), &sig); err != nil {
		return nil, fmt.Errorf("decode model signal: %w", err)
	}

	if sig.Intensity == nil {
		sig.Intensity = map[Cluster]float64{}
	}
	if sig.Frequency == nil {
		sig.Frequency = map[Cluster]float64{}
	}
	if sig.EvidenceSpans == nil {
		sig.EvidenceSpans = EvidenceMap{}
	}

	for _, c := range Clusters {
		sig.Intensity[c] = clampRange(sig.Intensity[c], 0, 3)
		sig.Frequency[c] = clampRange(sig.Frequency[c], 0, 3)

		valid := []string{}
		for _, span := range sig.EvidenceSpans[c] {
			if span != "" && strings.Contains(inputText, span) {
				valid = append(valid, span)
			}
		}
		sig.EvidenceSpans[c] = valid

		// The contract forbids nonzero scores without matching evidence.
		if len(valid) == 0 {
			sig.Intensity[c] = 0
			sig.Frequency[c] = 0
		}

		codes := []string{}
		for _, code := range sig.DSMHits[c] {
			if dsmCodePattern.MatchString(code) {
				codes = append(codes, code)
			}
		}
		if sig.DSMHits != nil {
			sig.DSMHits[c] = codes
		}
	}

	if sig.Intent.SelfHarm != IntentPossible && sig.Intent.SelfHarm != IntentLikely {
		sig.Intent.SelfHarm = IntentNone
	}
	if sig.Intent.OtherHarm != IntentPossible && sig.Intent.OtherHarm != IntentLikely {
		sig.Intent.OtherHarm = IntentNone
	}

	sig.ValenceHint = clampRange(sig.ValenceHint, -1, 1)
	sig.ArousalHint = clampRange(sig.ArousalHint, 0, 1)
	sig.Confidence = clampRange(sig.Confidence, 0, 1)

	return &sig, nil
}

func clampRange(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
