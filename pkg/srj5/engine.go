package srj5

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"dailymoji-be/internal/pkg/logger"
	"dailymoji-be/pkg/tokenizer"
)

// Pipeline modes recorded in the trace.
const (
	ModeAnalysis   = "ANALYSIS"
	ModeEmojiOnly  = "EMOJI_ONLY_ANALYSIS"
	ModeSafetyPass = "SAFETY_OVERRIDE"
)

// Crisis intervention presets.
const (
	PresetCrisisModal    = "SAFETY_CRISIS_MODAL"
	PresetCrisisSelfHarm = "SAFETY_CRISIS_SELF_HARM"
	PresetSafetyCheckIn  = "SAFETY_CHECK_IN"
)

// ErrInvalidInput is returned when a request carries neither text nor an
// icon. It is the only error Run surfaces; every collaborator failure
// degrades instead.
var ErrInvalidInput = errors.New("checkin requires text or an icon")

// CheckinInput is the engine-facing request. All fields except Text/Icon
// are optional.
type CheckinInput struct {
	Text       string         `json:"text"`
	Icon       string         `json:"icon,omitempty"`
	Intensity  *float64       `json:"intensity,omitempty"`
	Contexts   []string       `json:"contexts,omitempty"`
	Timestamp  string         `json:"timestamp,omitempty"`
	Surveys    map[string]int `json:"surveys,omitempty"`
	Onboarding map[string]int `json:"onboarding,omitempty"`
}

// Result is the full calibrated assessment for one check-in.
type Result struct {
	FinalScores  ScoreVector        `json:"final_scores"`
	GScore       float64            `json:"g_score"`
	Profile      int                `json:"profile"`
	Intervention InterventionRecord `json:"intervention"`
	AnalysisText string             `json:"analysis_text,omitempty"`
	Trace        Trace              `json:"trace"`
}

// Trace records every intermediate vector for observability. It is
// serialized as-is into the response and the persisted session row.
type Trace struct {
	Mode           string             `json:"mode"`
	Tokens         []string           `json:"tokens,omitempty"`
	TokensDegraded bool               `json:"tokens_degraded,omitempty"`
	Rule           *RuleOutcome       `json:"rule,omitempty"`
	SafetyPass1    *SafetyAssessment  `json:"safety_pass1,omitempty"`
	SafetyPass2    *SafetyAssessment  `json:"safety_pass2,omitempty"`
	Signal         *ModelSignal       `json:"model_signal,omitempty"`
	Baseline       ScoreVector        `json:"baseline,omitempty"`
	TextIF         ScoreVector        `json:"text_if,omitempty"`
	Fused          ScoreVector        `json:"fused,omitempty"`
	Meta           ScoreVector        `json:"meta,omitempty"`
	Calibrated     ScoreVector        `json:"calibrated,omitempty"`
	PCA            map[string]float64 `json:"pca,omitempty"`
}

// Engine is the unified scoring pipeline. One engine serves all requests;
// it is stateless apart from the injected read-only config and
// collaborators, so concurrent Run calls are safe.
type Engine struct {
	cfg        *Config
	tokenizer  tokenizer.Tokenizer
	rule       *RuleScorer
	safety     SafetyDetector
	fuser      *Fuser
	meta       *MetaAdjuster
	calibrator *SurveyCalibrator
	baseline   *BaselineCalculator
	profiles   *ProfileSelector
	log        logger.ILogger
}

func NewEngine(cfg *Config, tok tokenizer.Tokenizer, safety SafetyDetector, fuser *Fuser, log logger.ILogger) *Engine {
	return &Engine{
		cfg:        cfg,
		tokenizer:  tok,
		rule:       NewRuleScorer(cfg),
		safety:     safety,
		fuser:      fuser,
		meta:       NewMetaAdjuster(cfg),
		calibrator: NewSurveyCalibrator(cfg),
		baseline:   NewBaselineCalculator(cfg),
		profiles:   NewProfileSelector(cfg),
		log:        log,
	}
}

// Baseline exposes the onboarding calculator for its standalone endpoint.
func (e *Engine) Baseline(answers map[string]int) ScoreVector {
	return e.baseline.Baseline(answers)
}

// Run executes the full pipeline for one check-in.
func (e *Engine) Run(ctx context.Context, in CheckinInput) (*Result, error) {
	text := strings.TrimSpace(in.Text)

	if text == "" && in.Icon == "" {
		return nil, ErrInvalidInput
	}
	if text == "" {
		return e.runEmojiOnly(in), nil
	}

	trace := Trace{Mode: ModeAnalysis}

	tokens, err := e.tokenizer.Tokenize(ctx, text)
	if err != nil {
		// Tokenizer contract: unavailability degrades to no tokens.
		e.log.Warn("engine", "tokenizer unavailable, degrading", map[string]interface{}{
			"error": err.Error(),
		})
		tokens = nil
		trace.TokensDegraded = true
	}
	trace.Tokens = tokens

	rule := e.rule.Score(text, tokens)
	trace.Rule = &rule
	_, ruleMax := rule.Scores.Max()

	// Safety pass 1: pre-model, so clear-cut crisis text never waits on
	// the network.
	pass1 := e.safety.Evaluate(SafetyInput{Text: text, Tokens: tokens, TokensDegraded: trace.TokensDegraded})
	trace.SafetyPass1 = &pass1
	if pass1.Triggered {
		trace.Mode = ModeSafetyPass
		return e.crisisResult(trace, pass1.Override, PresetCrisisModal), nil
	}

	baseline := e.baseline.Baseline(in.Onboarding)
	trace.Baseline = baseline

	sig := e.fuser.FetchSignal(ctx, text, e.modelPayload(in, baseline), ruleMax)
	trace.Signal = sig

	fused, textIF := e.fuser.Fuse(rule.Scores, sig)
	trace.Fused = fused
	trace.TextIF = textIF

	meta := e.meta.Adjust(fused, in.Icon, in.Intensity, in.Contexts, in.Timestamp)
	trace.Meta = meta

	final := e.calibrator.Calibrate(meta, in.Surveys)
	trace.Calibrated = final

	// Safety pass 2: re-check with the model's reported intent.
	pass2 := e.safety.Evaluate(SafetyInput{Text: text, Tokens: tokens, TokensDegraded: trace.TokensDegraded, Signal: sig})
	trace.SafetyPass2 = &pass2
	if pass2.Triggered && sig.SelfHarm() != IntentPossible {
		trace.Mode = ModeSafetyPass
		override := pass2.Override
		if sig.SelfHarm() == IntentLikely {
			// Force the dominant negative cluster to the crisis floor on
			// top of whatever was computed downstream.
			dom := dominantNegative(final)
			override = final.Copy()
			if override[dom] < e.cfg.CrisisScoreMin {
				override[dom] = e.cfg.CrisisScoreMin
			}
			return e.crisisResult(trace, override, PresetCrisisSelfHarm), nil
		}
		return e.crisisResult(trace, override, PresetCrisisModal), nil
	}

	surveyHit := e.calibrator.AboveClinicalThreshold(in.Surveys)
	profile := e.profiles.PickProfile(final, sig, surveyHit)
	isNight := e.meta.IsNight(in.Contexts, in.Timestamp)
	intervention := e.profiles.SelectIntervention(final, isNight, sig)

	// "possible" intent keeps the computed scores but swaps in the softer
	// check-in variant.
	if pass2.Triggered && sig.SelfHarm() == IntentPossible {
		intervention = InterventionRecord{
			Cluster:     dominantNegative(final),
			Severity:    SeverityMedium,
			PresetID:    PresetSafetyCheckIn,
			Priority:    900,
			SafetyCheck: true,
		}
	}

	trace.PCA = PCAProxy(e.cfg, final)

	return &Result{
		FinalScores:  final,
		GScore:       GScore(e.cfg, final),
		Profile:      profile,
		Intervention: intervention,
		AnalysisText: e.profiles.AnalysisMessage(final),
		Trace:        trace,
	}, nil
}

// runEmojiOnly handles the icon-without-text flow: onboarding baseline at
// 30% plus a 70% bump on the icon's cluster, no tokenizer, no model call.
func (e *Engine) runEmojiOnly(in CheckinInput) *Result {
	trace := Trace{Mode: ModeEmojiOnly}

	baseline := e.baseline.Baseline(in.Onboarding)
	trace.Baseline = baseline

	final := NewScoreVector()
	for _, c := range Clusters {
		final[c] = baseline[c] * 0.3
	}
	if c, ok := e.cfg.IconToCluster[strings.ToLower(in.Icon)]; ok {
		final[c] += 0.7
	}
	for _, c := range Clusters {
		final[c] = Clip01(final[c])
	}

	surveyHit := e.calibrator.AboveClinicalThreshold(in.Surveys)
	profile := e.profiles.PickProfile(final, nil, surveyHit)
	isNight := e.meta.IsNight(in.Contexts, in.Timestamp)
	trace.PCA = PCAProxy(e.cfg, final)

	return &Result{
		FinalScores:  final,
		GScore:       GScore(e.cfg, final),
		Profile:      profile,
		Intervention: e.profiles.SelectIntervention(final, isNight, nil),
		AnalysisText: e.profiles.AnalysisMessage(final),
		Trace:        trace,
	}
}

func (e *Engine) crisisResult(trace Trace, override ScoreVector, presetID string) *Result {
	dom := dominantNegative(override)
	return &Result{
		FinalScores:  override,
		GScore:       GScore(e.cfg, override),
		Profile:      ProfileCrisis,
		Intervention: e.profiles.CrisisIntervention(dom, presetID),
		Trace:        trace,
	}
}

// modelPayload is the user content sent to the model collaborator: the
// raw request plus the onboarding baseline, as one JSON object.
func (e *Engine) modelPayload(in CheckinInput, baseline ScoreVector) string {
	payload := struct {
		CheckinInput
		BaselineScores ScoreVector `json:"baseline_scores"`
	}{CheckinInput: in, BaselineScores: baseline}

	data, err := json.Marshal(payload)
	if err != nil {
		return in.Text
	}
	return string(data)
}

func dominantNegative(s ScoreVector) Cluster {
	if s[ClusterNegHigh] > s[ClusterNegLow] {
		return ClusterNegHigh
	}
	return ClusterNegLow
}

// RequestTimestamp parses the inbound ISO-8601 timestamp, falling back to
// now for persistence when absent or malformed.
func RequestTimestamp(ts string) time.Time {
	if ts == "" {
		return time.Now().UTC()
	}
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Now().UTC()
	}
	return parsed
}
