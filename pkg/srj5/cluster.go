package srj5

// Cluster is one of the five fixed SRJ-5 emotional/behavioral clusters.
// The set is closed; it is never extended at runtime.
type Cluster string

const (
	ClusterNegLow   Cluster = "neg_low"   // depression / lethargy
	ClusterNegHigh  Cluster = "neg_high"  // anxiety / anger
	ClusterADHD     Cluster = "adhd"      // inattention / impulsivity
	ClusterSleep    Cluster = "sleep"     // sleep quality
	ClusterPositive Cluster = "positive"  // calm / recovery
)

// Clusters lists every cluster in scoring order. The order matters for the
// hard-hit pass: when a single token matches keywords of more than one
// cluster, the earlier entry wins (neg_low takes priority over neg_high).
var Clusters = []Cluster{ClusterNegLow, ClusterNegHigh, ClusterADHD, ClusterSleep, ClusterPositive}

// ScoreVector maps every cluster to a score. Finalized vectors hold values
// in [0,1]; onboarding baselines may transiently hold [-1,1].
type ScoreVector map[Cluster]float64

// EvidenceMap maps a cluster to the verbatim text fragments that justify
// its score.
type EvidenceMap map[Cluster][]string

// NewScoreVector returns a zeroed vector covering all clusters.
func NewScoreVector() ScoreVector {
	s := make(ScoreVector, len(Clusters))
	for _, c := range Clusters {
		s[c] = 0.0
	}
	return s
}

// NewEvidenceMap returns an empty evidence map covering all clusters.
func NewEvidenceMap() EvidenceMap {
	e := make(EvidenceMap, len(Clusters))
	for _, c := range Clusters {
		e[c] = []string{}
	}
	return e
}

// Copy returns an independent copy of the vector.
func (s ScoreVector) Copy() ScoreVector {
	out := make(ScoreVector, len(s))
	for c, v := range s {
		out[c] = v
	}
	return out
}

// Max returns the highest score and its cluster. Ties resolve in Clusters
// order so the result is deterministic.
func (s ScoreVector) Max() (Cluster, float64) {
	top := Clusters[0]
	best := s[top]
	for _, c := range Clusters[1:] {
		if s[c] > best {
			top, best = c, s[c]
		}
	}
	return top, best
}

// Clip01 clamps x into [0,1].
func Clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// ClipSym clamps x into [-1,1].
func ClipSym(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}

// IsCluster reports whether name is a known cluster identifier.
func IsCluster(name string) bool {
	for _, c := range Clusters {
		if string(c) == name {
			return true
		}
	}
	return false
}
