package srj5

import (
	"strings"
	"time"
)

// MetaAdjuster applies the three self-report nudges: icon choice,
// self-rated intensity, and the night window. Each nudge is additive and
// clipped to [0,1] independently.
type MetaAdjuster struct {
	cfg *Config
}

func NewMetaAdjuster(cfg *Config) *MetaAdjuster {
	return &MetaAdjuster{cfg: cfg}
}

// Adjust returns a new vector; the input is not mutated.
func (m *MetaAdjuster) Adjust(base ScoreVector, icon string, intensity *float64, contexts []string, timestamp string) ScoreVector {
	s := base.Copy()

	if icon != "" {
		if c, ok := m.cfg.IconToCluster[strings.ToLower(icon)]; ok {
			s[c] = Clip01(s[c] + m.cfg.MetaIconWeight*0.2)
		}
	}

	if intensity != nil {
		inten := Clip01(*intensity / m.cfg.IntensityScale)
		for _, c := range []Cluster{ClusterNegLow, ClusterNegHigh, ClusterSleep, ClusterADHD} {
			s[c] = Clip01(s[c] + inten*m.cfg.MetaSelfWeight*0.2)
		}
	}

	if m.IsNight(contexts, timestamp) {
		s[ClusterSleep] = Clip01(s[ClusterSleep] + m.cfg.MetaTimeWeight*0.2)
	}

	return s
}

// IsNight reports whether the request falls in the night window, either by
// an explicit "night" context tag or by the timestamp's local hour.
// Unparseable timestamps never count as night.
func (m *MetaAdjuster) IsNight(contexts []string, timestamp string) bool {
	for _, ctx := range contexts {
		if strings.EqualFold(ctx, "night") {
			return true
		}
	}
	if timestamp == "" {
		return false
	}
	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return false
	}
	hour := ts.Hour()
	return hour >= m.cfg.NightStartHour || hour < m.cfg.NightEndHour
}
