package srj5

import (
	"math"
	"testing"
)

func TestRuleScorerHardHit(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		tokens      []string
		wantCluster Cluster
		wantToken   string
	}{
		{
			name:        "depression keyword short-circuits",
			text:        "요즘 너무 우울해",
			tokens:      []string{"요즘", "너무", "우울"},
			wantCluster: ClusterNegLow,
			wantToken:   "우울",
		},
		{
			name:        "anxiety keyword",
			text:        "불안 때문에 잠이 안 와",
			tokens:      []string{"불안", "때문", "잠"},
			wantCluster: ClusterNegHigh,
			wantToken:   "불안",
		},
		{
			name:        "first matching token wins over later ones",
			text:        "산만하고 우울해",
			tokens:      []string{"산만", "우울"},
			wantCluster: ClusterADHD,
			wantToken:   "산만",
		},
	}

	scorer := NewRuleScorer(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.text, tt.tokens)
			if got.Kind != OutcomeHardHit {
				t.Fatalf("Kind = %s, want %s", got.Kind, OutcomeHardHit)
			}
			if got.Cluster != tt.wantCluster || got.Token != tt.wantToken {
				t.Errorf("hit = (%s, %s), want (%s, %s)", got.Cluster, got.Token, tt.wantCluster, tt.wantToken)
			}
			if got.Scores[tt.wantCluster] != 1.0 {
				t.Errorf("score[%s] = %v, want 1.0", tt.wantCluster, got.Scores[tt.wantCluster])
			}
			for _, c := range Clusters {
				if c != tt.wantCluster && got.Scores[c] != 0.0 {
					t.Errorf("score[%s] = %v, want 0 (one-hot)", c, got.Scores[c])
				}
			}
		})
	}
}

func TestRuleScorerLexiconBase(t *testing.T) {
	scorer := NewRuleScorer(DefaultConfig())

	got := scorer.Score("걱정이 많아", []string{"걱정", "많아"})
	if got.Kind != OutcomeLexicon {
		t.Fatalf("Kind = %s, want %s", got.Kind, OutcomeLexicon)
	}
	if got.Scores[ClusterNegHigh] != 0.2 {
		t.Errorf("score[neg_high] = %v, want base 0.2", got.Scores[ClusterNegHigh])
	}
	if len(got.Evidence[ClusterNegHigh]) != 1 || got.Evidence[ClusterNegHigh][0] != "걱정" {
		t.Errorf("evidence[neg_high] = %v, want [걱정]", got.Evidence[ClusterNegHigh])
	}
}

func TestRuleScorerEmphasisBoost(t *testing.T) {
	scorer := NewRuleScorer(DefaultConfig())

	got := scorer.Score("너무 걱정돼", []string{"너무", "걱정"})
	// boost = 1.05 * (1 + 0.3/(1+1)) applied to the 0.2 base
	want := 0.2 * 1.05 * (1 + 0.3/2)
	if math.Abs(got.Scores[ClusterNegHigh]-want) > 1e-9 {
		t.Errorf("score[neg_high] = %v, want %v", got.Scores[ClusterNegHigh], want)
	}
	if len(got.Diag.Emphasis) != 1 {
		t.Errorf("emphasis diag = %v, want one entry", got.Diag.Emphasis)
	}

	plain := scorer.Score("걱정돼", []string{"걱정"})
	if got.Scores[ClusterNegHigh] <= plain.Scores[ClusterNegHigh] {
		t.Errorf("emphasis did not raise the score: %v <= %v",
			got.Scores[ClusterNegHigh], plain.Scores[ClusterNegHigh])
	}
}

func TestRuleScorerNegationClearsPositive(t *testing.T) {
	scorer := NewRuleScorer(DefaultConfig())

	got := scorer.Score("기분이 좋아 보이지는 않아", []string{"기분", "좋아", "보이지는", "않아"})
	if !got.Diag.Negation {
		t.Fatal("negation not detected")
	}
	if got.Scores[ClusterPositive] != 0.0 {
		t.Errorf("score[positive] = %v, want 0 after negation", got.Scores[ClusterPositive])
	}
	if len(got.Evidence[ClusterPositive]) != 0 {
		t.Errorf("evidence[positive] = %v, want empty", got.Evidence[ClusterPositive])
	}
}

func TestRuleScorerNoEvidenceNoScore(t *testing.T) {
	scorer := NewRuleScorer(DefaultConfig())

	got := scorer.Score("오늘 점심 메뉴 고르기", []string{"오늘", "점심", "메뉴", "고르기"})
	if got.Kind != OutcomeLexicon {
		t.Fatalf("Kind = %s, want %s", got.Kind, OutcomeLexicon)
	}
	for _, c := range Clusters {
		if got.Scores[c] != 0.0 {
			t.Errorf("score[%s] = %v, want 0 without evidence", c, got.Scores[c])
		}
	}
	if len(got.Diag.Ignored) == 0 {
		t.Error("expected unmatched tokens in the ignored diagnostics")
	}
}

func TestRuleScorerRawTextFallback(t *testing.T) {
	scorer := NewRuleScorer(DefaultConfig())

	// The tokenizer split the multi-word keyword apart; the raw-text scan
	// still finds it.
	got := scorer.Score("심장 뛰어서 무서웠어", []string{"심장", "뛰어서", "무서웠어"})
	if got.Scores[ClusterNegHigh] == 0.0 {
		t.Errorf("score[neg_high] = 0, want raw-text match on 심장 뛰어")
	}
	found := false
	for _, kw := range got.Evidence[ClusterNegHigh] {
		if kw == "심장 뛰어" {
			found = true
		}
	}
	if !found {
		t.Errorf("evidence[neg_high] = %v, want to include 심장 뛰어", got.Evidence[ClusterNegHigh])
	}
}

func TestRuleScorerMaxNotSum(t *testing.T) {
	scorer := NewRuleScorer(DefaultConfig())

	// Two plain lexicon matches in one cluster still score the single base.
	got := scorer.Score("걱정되고 초조해", []string{"걱정", "초조"})
	if got.Scores[ClusterNegHigh] != 0.2 {
		t.Errorf("score[neg_high] = %v, want 0.2 (max, not sum)", got.Scores[ClusterNegHigh])
	}
	if len(got.Evidence[ClusterNegHigh]) != 2 {
		t.Errorf("evidence[neg_high] = %v, want both keywords", got.Evidence[ClusterNegHigh])
	}
}
