package srj5

// Config carries every static table and weight the pipeline uses. It is
// built once (normally via DefaultConfig), injected into components at
// construction, and treated as read-only afterwards.
type Config struct {
	// Rule scorer
	HardHitKeywords map[Cluster][]string
	Lexicon         map[Cluster][]string
	EmphasisWords   []string
	NegationWords   []string
	RuleBaseScore   float64 // base score per lexicon hit
	GlobalBoost     float64 // multiplier when any emphasis word is present
	DistK           float64 // decay constant for emphasis distance boost

	// Fusion
	WRule          float64 // weight of the rule score in the fused score
	WLLM           float64 // weight of the model-derived text score
	IntensityBlend float64 // share of normalized intensity in the text score
	FrequencyBlend float64 // share of normalized frequency in the text score
	LexBias        float64 // rule-score bias added into the text score
	RuleSkipLLM    float64 // rule max at or above this skips the model call

	// Meta adjust
	IconToCluster   map[string]Cluster
	MetaIconWeight  float64
	MetaSelfWeight  float64 // self-rated intensity weight
	MetaTimeWeight  float64 // night-window sleep weight
	NightStartHour  int     // inclusive
	NightEndHour    int     // exclusive
	IntensityScale  float64 // self-rated intensity raw scale (slider max)

	// Survey calibration
	DSMWeights map[Cluster]float64
	DSMBeta    map[Cluster]float64
	Surveys    map[Cluster]SurveyAnchor

	// Onboarding baseline
	OnboardingMapping map[string][]OnboardingWeight
	OnboardingReverse map[string]bool // reverse-coded question keys
	OnboardingMax     float64         // answer scale maximum

	// Profile & intervention
	SeverityLowMax     float64
	SeverityMedMax     float64
	CrisisScoreMin     float64 // negative-cluster floor on crisis override
	ProfileCrisisMax   float64 // max(neg) above this forces profile 1
	ProfileClinicalMax float64 // max score above this forces profile 2
	ProfileElevatedMax float64 // max score above this forces profile 3
	Interventions      []InterventionRecord

	// G-score / PCA proxy
	GScoreWeights map[Cluster]float64
	PCAProxy      map[string]map[Cluster]float64

	// Safety
	SafetyRegex      []string
	SafetyFigurative []string
	SafetyLemmas     []string
	SafetyCombos     [][]string // all members present anywhere in the token set

	// Analysis copy (kept as data; localization stays outside the core)
	AnalysisMessages map[Cluster]map[string]string
}

// SurveyAnchor describes how one standardized instrument total maps onto a
// cluster: z = (total - Anchor) / Scale, profile escalation at Threshold.
type SurveyAnchor struct {
	Instrument string
	Anchor     float64
	Scale      float64
	Threshold  int // clinical cutoff used by the profile ladder; 0 = none
}

// OnboardingWeight is one entry of the many-to-many onboarding mapping.
type OnboardingWeight struct {
	Cluster Cluster
	W       float64
}

// InterventionRecord is a static, prioritized action template.
type InterventionRecord struct {
	Cluster     Cluster `json:"cluster"`
	Severity    string  `json:"severity"` // "low", "medium", "high" or "any"
	PresetID    string  `json:"preset_id"`
	Priority    int     `json:"priority"`
	SafetyCheck bool    `json:"safety_check"`
}

// DefaultConfig returns the production SRJ-5 tables.
func DefaultConfig() *Config {
	return &Config{
		HardHitKeywords: map[Cluster][]string{
			ClusterNegLow:   {"우울", "무기력", "번아웃", "자살"},
			ClusterNegHigh:  {"불안", "분노", "공포", "짜증", "공황"},
			ClusterADHD:     {"ADHD", "산만", "집중", "충동"},
			ClusterSleep:    {"수면", "불면증"},
			ClusterPositive: {"행복", "재밌음", "즐거움"},
		},
		Lexicon: map[Cluster][]string{
			ClusterNegHigh: {
				"불안", "초조", "긴장", "걱정", "공포", "무섭", "두렵", "공황", "짜증", "분노",
				"화나", "열받아", "빡쳐", "미치겠어", "답답해", "숨막혀", "심장 뛰어", "떨려",
				"스트레스", "압박감", "예민",
			},
			ClusterNegLow: {
				"우울", "무기력", "피곤", "지침", "탈진", "소진", "의욕 없", "재미없", "무의미",
				"지쳐", "지치", "힘들", "힘드네", "힘드렁", "기운없어", "외로워", "슬퍼",
				"눈물나", "버거워", "서러워", "비참",
			},
			ClusterADHD: {
				"산만", "집중", "딴짓", "딴생각", "미루", "충동", "정리", "실수", "까먹",
				"가만히", "안절부절", "질렀어", "정신없어",
			},
			ClusterSleep: {
				"잠", "불면", "깨", "뒤척", "과다수면", "졸려", "수면제", "피곤",
				"못잤어", "설쳤어", "새벽", "꿈꿨어", "가위",
			},
			ClusterPositive: {
				"감사", "행복", "기쁨", "편안", "자신", "회복", "좋아", "즐거움",
				"신나", "재밌어", "뿌듯", "설레", "기대돼", "고마워", "다행", "상쾌",
			},
		},
		EmphasisWords: []string{"너무", "진짜", "완전", "엄청", "매우", "ㅈㄴ", "졸라", "존나"},
		NegationWords: []string{"안", "않", "아니", "없", "못"},
		RuleBaseScore: 0.2,
		GlobalBoost:   1.05,
		DistK:         0.3,

		WRule:          0.5,
		WLLM:           0.5,
		IntensityBlend: 0.6,
		FrequencyBlend: 0.4,
		LexBias:        0.1,
		RuleSkipLLM:    0.8,

		IconToCluster: map[string]Cluster{
			"angry":    ClusterNegHigh,
			"crying":   ClusterNegLow,
			"shocked":  ClusterADHD,
			"sleeping": ClusterSleep,
			"smile":    ClusterPositive,
			// Cluster identifiers are accepted as icons too.
			"neg_high": ClusterNegHigh,
			"neg_low":  ClusterNegLow,
			"adhd":     ClusterADHD,
			"sleep":    ClusterSleep,
			"positive": ClusterPositive,
		},
		MetaIconWeight: 1.0,
		MetaSelfWeight: 1.0,
		MetaTimeWeight: 1.0,
		NightStartHour: 22,
		NightEndHour:   7,
		IntensityScale: 10.0,

		DSMWeights: map[Cluster]float64{
			ClusterNegLow: 1.0, ClusterNegHigh: 1.0, ClusterADHD: 1.0,
			ClusterSleep: 1.0, ClusterPositive: 1.0,
		},
		DSMBeta: map[Cluster]float64{
			ClusterNegLow: 0.1, ClusterNegHigh: 0.1, ClusterADHD: 0.1,
			ClusterSleep: 0.1, ClusterPositive: 0.1,
		},
		Surveys: map[Cluster]SurveyAnchor{
			ClusterNegLow:   {Instrument: "phq9", Anchor: 10, Scale: 10, Threshold: 10},
			ClusterNegHigh:  {Instrument: "gad7", Anchor: 10, Scale: 10, Threshold: 10},
			ClusterSleep:    {Instrument: "psqi", Anchor: 10, Scale: 10},
			ClusterADHD:     {Instrument: "asrs", Anchor: 12, Scale: 8},
			ClusterPositive: {Instrument: "rses", Anchor: 20, Scale: 10},
		},

		OnboardingMapping: map[string][]OnboardingWeight{
			"q1": {{ClusterNegLow, 0.80}, {ClusterSleep, 0.10}, {ClusterPositive, -0.10}},
			"q2": {{ClusterNegLow, 0.85}, {ClusterADHD, 0.05}, {ClusterPositive, -0.10}},
			"q3": {{ClusterNegHigh, 0.90}, {ClusterSleep, 0.10}},
			"q4": {{ClusterNegHigh, 0.85}, {ClusterNegLow, 0.05}, {ClusterSleep, 0.10}},
			"q5": {{ClusterNegHigh, 0.60}, {ClusterNegLow, 0.25}, {ClusterADHD, 0.15}},
			"q6": {{ClusterSleep, 0.90}, {ClusterNegLow, 0.10}},
			"q7": {{ClusterPositive, 0.80}, {ClusterNegLow, 0.20}},
			"q8": {{ClusterNegLow, 0.80}, {ClusterSleep, 0.20}},
			"q9": {{ClusterADHD, 0.85}, {ClusterNegLow, 0.15}},
		},
		OnboardingReverse: map[string]bool{"q7": true},
		OnboardingMax:     3.0,

		SeverityLowMax:     0.40,
		SeverityMedMax:     0.70,
		CrisisScoreMin:     0.95,
		ProfileCrisisMax:   0.85,
		ProfileClinicalMax: 0.60,
		ProfileElevatedMax: 0.30,
		Interventions: []InterventionRecord{
			{ClusterNegLow, "low", "neg_low_tip_01", 10, false},
			{ClusterNegLow, "medium", "neg_low_breathing_01", 40, false},
			{ClusterNegLow, "high", "neg_low_video_01", 70, false},
			{ClusterNegLow, "any", "neg_low_talk_01", 5, false},
			{ClusterNegHigh, "low", "neg_high_tip_01", 10, false},
			{ClusterNegHigh, "medium", "neg_high_breathing_01", 40, false},
			{ClusterNegHigh, "high", "neg_high_grounding_01", 70, false},
			{ClusterADHD, "low", "adhd_tip_01", 10, false},
			{ClusterADHD, "medium", "adhd_pomodoro_01", 40, false},
			{ClusterADHD, "high", "adhd_focus_training_01", 60, false},
			{ClusterSleep, "low", "sleep_tip_01", 10, false},
			{ClusterSleep, "medium", "sleep_routine_01", 40, false},
			{ClusterSleep, "high", "sleep_winddown_01", 60, false},
			{ClusterPositive, "any", "positive_savoring_01", 10, false},
			{ClusterNegLow, "high", "safety_crisis_modal_v1", 1000, true},
		},

		GScoreWeights: map[Cluster]float64{
			ClusterNegHigh: 1.0, ClusterNegLow: 0.9, ClusterSleep: 0.7,
			ClusterADHD: 0.6, ClusterPositive: -0.3,
		},
		PCAProxy: map[string]map[Cluster]float64{
			"pc1": {ClusterNegLow: 0.55, ClusterNegHigh: 0.35, ClusterSleep: 0.25, ClusterADHD: 0.20, ClusterPositive: -0.35},
			"pc2": {ClusterNegHigh: 0.45, ClusterADHD: 0.40, ClusterNegLow: -0.10, ClusterSleep: 0.15, ClusterPositive: 0.05},
		},

		SafetyRegex: []string{
			`죽고\s*싶`, `살고\s*싶지`, `살기\s*싫`, `자살`, `뛰어\s*내리`, `투신`,
			`목을\s*매달`, `목숨(?:을)?\s*끊`, `생을\s*마감`, `죽어버리`, `끝내버리`,
		},
		SafetyFigurative: []string{
			`(배고파|배불러|졸려|피곤해|더워|추워|힘들|아파)\s*죽`,
			`(좋아|웃겨|귀여워|보고싶어|궁금해)\s*죽`,
			`죽을\s*만큼`, `죽겠다\s*ㅋ`, `개\s*맛있`,
		},
		SafetyLemmas: []string{
			"죽다", "자살하다", "뛰어내리다", "투신하다", "목매달다",
			"자해하다", "유서", "극단적이다", "죽이다", "해치다",
			"사망하다", "숨지다", "자학하다", "유언", "칼", "흉기",
		},
		SafetyCombos: [][]string{
			{"살다", "싫다"},
			{"목숨", "끊다"},
			{"생", "마감하다"},
			{"극단적", "선택"},
			{"나쁜", "생각"},
			{"몸", "상하다"},
			{"세상", "떠나다"},
		},

		AnalysisMessages: map[Cluster]map[string]string{
			ClusterNegLow: {
				"low":  "마음이 조금 가라앉아 있네요. 그래도 잘 버티고 계세요.",
				"mid":  "요즘 많이 지치셨나 봐요. 스스로를 돌볼 시간이 필요해요.",
				"high": "마음이 많이 무거우신 것 같아요. 혼자 끙끙 앓지 않으셔도 돼요.",
			},
			ClusterNegHigh: {
				"low":  "약간의 긴장감이 느껴져요. 깊게 숨을 쉬어볼까요?",
				"mid":  "불안과 스트레스가 쌓여 있는 것 같아요.",
				"high": "마음이 크게 요동치고 있네요. 잠시 멈추고 진정할 시간이 필요해요.",
			},
			ClusterADHD: {
				"low":  "집중이 살짝 흐트러진 정도예요.",
				"mid":  "마음이 붕 떠서 집중이 어려운 하루였나 봐요.",
				"high": "생각이 사방으로 튀어서 많이 힘드셨겠어요.",
			},
			ClusterSleep: {
				"low":  "수면 리듬이 살짝 흔들렸네요.",
				"mid":  "요즘 잠이 마음처럼 따라주지 않나 봐요.",
				"high": "잠 때문에 많이 지치셨을 것 같아요. 오늘은 쉬어가요.",
			},
			ClusterPositive: {
				"low":  "잔잔한 하루였네요.",
				"mid":  "좋은 기운이 느껴져요!",
				"high": "오늘은 마음이 반짝반짝 빛나는 날이에요!",
			},
		},
	}
}
