package srj5

import "testing"

func TestParseModelSignalMarkdownFence(t *testing.T) {
	raw := "```json\n" + validSignalJSON + "\n```"
	sig, err := ParseModelSignal(raw, "불안해서 잠이 안 와")
	if err != nil {
		t.Fatal(err)
	}
	if sig.Intensity[ClusterNegHigh] != 3 {
		t.Errorf("intensity[neg_high] = %v, want 3", sig.Intensity[ClusterNegHigh])
	}
}

func TestParseModelSignalDropsFabricatedEvidence(t *testing.T) {
	raw := `{
		"intensity": {"neg_low": 3, "sleep": 2},
		"frequency": {"neg_low": 2, "sleep": 2},
		"evidence_spans": {"neg_low": ["지쳤다"], "sleep": ["한숨도 못 잤다"]},
		"intent": {"self_harm": "none", "other_harm": "none"}
	}`
	sig, err := ParseModelSignal(raw, "요즘 너무 지쳤다")
	if err != nil {
		t.Fatal(err)
	}
	// neg_low evidence is verbatim, sleep evidence is not.
	if sig.Intensity[ClusterNegLow] != 3 {
		t.Errorf("intensity[neg_low] = %v, want 3", sig.Intensity[ClusterNegLow])
	}
	if sig.Intensity[ClusterSleep] != 0 || sig.Frequency[ClusterSleep] != 0 {
		t.Errorf("sleep = (%v, %v), want zeroed without verbatim evidence",
			sig.Intensity[ClusterSleep], sig.Frequency[ClusterSleep])
	}
	if len(sig.EvidenceSpans[ClusterSleep]) != 0 {
		t.Errorf("sleep evidence = %v, want dropped", sig.EvidenceSpans[ClusterSleep])
	}
}

func TestParseModelSignalClampsAndCollapses(t *testing.T) {
	raw := `{
		"intensity": {"neg_high": 7},
		"frequency": {"neg_high": -1},
		"evidence_spans": {"neg_high": ["불안"]},
		"dsm_hits": {"neg_high": ["GAD7_Q2", "MADE_UP_CODE"]},
		"intent": {"self_harm": "definitely", "other_harm": ""},
		"valence_hint": -4,
		"confidence": 2
	}`
	sig, err := ParseModelSignal(raw, "불안해")
	if err != nil {
		t.Fatal(err)
	}
	if sig.Intensity[ClusterNegHigh] != 3 {
		t.Errorf("intensity clamped to %v, want 3", sig.Intensity[ClusterNegHigh])
	}
	if sig.Frequency[ClusterNegHigh] != 0 {
		t.Errorf("frequency clamped to %v, want 0", sig.Frequency[ClusterNegHigh])
	}
	if len(sig.DSMHits[ClusterNegHigh]) != 1 || sig.DSMHits[ClusterNegHigh][0] != "GAD7_Q2" {
		t.Errorf("dsm_hits = %v, want only GAD7_Q2", sig.DSMHits[ClusterNegHigh])
	}
	if sig.Intent.SelfHarm != IntentNone || sig.Intent.OtherHarm != IntentNone {
		t.Errorf("intent = %+v, want collapsed to none", sig.Intent)
	}
	if sig.ValenceHint != -1 || sig.Confidence != 1 {
		t.Errorf("hints = (%v, %v), want clamped", sig.ValenceHint, sig.Confidence)
	}
}

func TestParseModelSignalRejectsNonJSON(t *testing.T) {
	if _, err := ParseModelSignal("죄송하지만 분석할 수 없습니다.", "불안해"); err == nil {
		t.Fatal("expected an error on a prose response")
	}
}

func TestModelSignalNilSafety(t *testing.T) {
	var sig *ModelSignal
	if sig.SelfHarmFlagged() {
		t.Error("nil signal flagged self-harm")
	}
	if sig.SelfHarm() != IntentNone {
		t.Errorf("SelfHarm = %q, want none", sig.SelfHarm())
	}
	if sig.SleepEvidence() != nil {
		t.Errorf("SleepEvidence = %v, want nil", sig.SleepEvidence())
	}
}
