package srj5

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"dailymoji-be/internal/pkg/logger"
	"dailymoji-be/pkg/llm"
)

// AnalysisSystemPrompt is the fixed instruction contract sent to the model
// collaborator. The response must be strict JSON matching ModelSignal.
const AnalysisSystemPrompt = `You are a clinical-grade SRJ-5 emotion analysis assistant.
Return STRICT JSON ONLY matching this schema. No prose.

SCHEMA:
{'schema_version':'srj5-v1',
 'intensity':{'neg_low':0..3,'neg_high':0..3,'adhd':0..3,'sleep':0..3,'positive':0..3},
 'frequency':{'neg_low':0..3,'neg_high':0..3,'adhd':0..3,'sleep':0..3,'positive':0..3},
 'evidence_spans':{'neg_low':[str],'neg_high':[str],'adhd':[str],'sleep':[str],'positive':[str]},
 'dsm_hits':{'neg_low':[str],'neg_high':[str],'adhd':[str],'sleep':[str],'positive':[str]},
 'intent':{'self_harm':'none|possible|likely','other_harm':'none|possible|likely'},
 'irony_or_negation': bool,
 'valence_hint': -1.0..1.0,
 'arousal_hint': 0.0..1.0,
 'confidence': 0.0..1.0}

RULES:
- Input text may contain casual or irrelevant small talk. Ignore all non-emotional content.
- Only assign nonzero scores when evidence keywords are explicitly present.

A) Evidence & Gating
- evidence_spans MUST copy exact words/phrases from the input text.
- If evidence_spans is empty the corresponding cluster scores MUST be 0.

B) Cluster Priorities
- neg_low: depression/lethargy words must dominate over neg_high.
- neg_high: only score high on explicit anger/anxiety/fear words.
- adhd: score >0 only on inattention/impulsivity words.
- sleep: score >0 only on sleep-related keywords.
- positive: only on explicit positive words. Exclude irony and sarcasm.

C) DSM Hits
- dsm_hits may only contain predefined survey codes:
  PHQ9_Q1..9, BAT_Q1..4, GAD7_Q1..7, PSQI_Q1..7, ASRS_Q1..6, RSES_Q1..10.

D) SAFETY RULES:
- If the user expresses their own desire or intention to die or end their
  life, mark intent.self_harm as "likely".
- Someone else's suicide, news, or a figurative joke keeps self_harm "none".
- Be conservative: "possible"/"likely" only for clear first-person intent.

STRICT:
- Do NOT invent evidence.
- Do NOT assign nonzero scores without matching evidence.
- Do NOT output anything besides the JSON object.`

// SignalCache keys parsed model signals by content hash so identical text
// inside the TTL does not pay for a second model call.
type SignalCache interface {
	Get(key string) (*ModelSignal, bool)
	Set(key string, sig *ModelSignal)
}

// Fuser owns the cost-control gate around the model collaborator and the
// blending of its structured signal with the rule score.
type Fuser struct {
	cfg      *Config
	provider llm.LLMProvider
	cache    SignalCache
	log      logger.ILogger
	timeout  time.Duration
}

// NewFuser wires the fuser. provider may be nil (fusion then always
// degenerates to the rule score); cache may be nil.
func NewFuser(cfg *Config, provider llm.LLMProvider, cache SignalCache, log logger.ILogger, timeout time.Duration) *Fuser {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fuser{cfg: cfg, provider: provider, cache: cache, log: log, timeout: timeout}
}

// FetchSignal returns the model signal for the payload, or nil when the
// call is skipped (rule score already confident, no provider) or fails in
// any way. A nil return is the defined degradation, never an error.
func (f *Fuser) FetchSignal(ctx context.Context, text, userPayload string, ruleMax float64) *ModelSignal {
	if f.provider == nil {
		return nil
	}
	if ruleMax >= f.cfg.RuleSkipLLM {
		f.log.Debug("fuser", "rule score confident, skipping model call", map[string]interface{}{
			"rule_max": ruleMax,
		})
		return nil
	}

	key := signalKey(text)
	if f.cache != nil {
		if sig, ok := f.cache.Get(key); ok {
			return sig
		}
	}

	raw, err := f.generate(ctx, userPayload)
	if err != nil {
		f.log.Warn("fuser", "model call failed, continuing rule-only", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	sig, err := ParseModelSignal(raw, text)
	if err != nil {
		f.log.Warn("fuser", "model signal failed validation, continuing rule-only", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	if f.cache != nil {
		f.cache.Set(key, sig)
	}
	return sig
}

// generate performs the bounded model call with a single backoff retry.
// The call has no side effects, so the retry is idempotent.
func (f *Fuser) generate(ctx context.Context, userPayload string) (string, error) {
	history := []llm.Message{
		{Role: "system", Content: AnalysisSystemPrompt},
		{Role: "user", Content: userPayload},
	}

	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	raw, err := f.provider.Chat(callCtx, history, llm.WithTemperature(0.0), llm.WithJSONFormat())
	if err == nil {
		return raw, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	select {
	case <-time.After(500 * time.Millisecond):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	retryCtx, cancelRetry := context.WithTimeout(ctx, f.timeout)
	defer cancelRetry()
	return f.provider.Chat(retryCtx, history, llm.WithTemperature(0.0), llm.WithJSONFormat())
}

// Fuse blends the rule score with the model signal. With an absent signal
// the fused vector equals the rule vector (identity degradation). The
// returned textIF vector is kept for the trace.
func (f *Fuser) Fuse(rule ScoreVector, sig *ModelSignal) (fused, textIF ScoreVector) {
	textIF = NewScoreVector()
	if sig != nil {
		for _, c := range Clusters {
			in := Clip01(sig.Intensity[c] / 3.0)
			fn := Clip01(sig.Frequency[c] / 3.0)
			textIF[c] = Clip01(f.cfg.IntensityBlend*in + f.cfg.FrequencyBlend*fn + f.cfg.LexBias*rule[c])
		}
	}

	fused = NewScoreVector()
	for _, c := range Clusters {
		if sig == nil {
			fused[c] = Clip01(rule[c])
			continue
		}
		fused[c] = Clip01(f.cfg.WRule*rule[c] + f.cfg.WLLM*textIF[c])
	}
	return fused, textIF
}

func signalKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
