package analysis

// Tier is the coarse classification of a query's expected evaluation cost.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// rank orders tiers for threshold comparisons.
func (t Tier) rank() int {
	switch t {
	case TierLow:
		return 0
	case TierMedium:
		return 1
	default:
		return 2
	}
}

// Exceeds reports whether t is costlier than other.
func (t Tier) Exceeds(other Tier) bool {
	return t.rank() > other.rank()
}

// Weights are the per-feature contributions to the complexity score. Every
// term is either a presence bonus or a capped count term, so adding features
// to a query can never lower its score.
type Weights struct {
	Predicates    float64 `yaml:"predicates"`
	Directives    float64 `yaml:"directives"`
	Anchors       float64 `yaml:"anchors"`
	Alternations  float64 `yaml:"alternations"`
	Quantifiers   float64 `yaml:"quantifiers"`
	Wildcards     float64 `yaml:"wildcards"`
	PerClause     float64 `yaml:"per-clause"`
	PerClauseCap  float64 `yaml:"per-clause-cap"`
	LengthDivisor float64 `yaml:"length-divisor"`
	LengthCap     float64 `yaml:"length-cap"`
	DepthDivisor  float64 `yaml:"depth-divisor"`
	DepthCap      float64 `yaml:"depth-cap"`
}

// Thresholds classify a raw score into a tier: score <= Low is low,
// score <= Medium is medium, anything above is high.
type Thresholds struct {
	Low    float64 `yaml:"low"`
	Medium float64 `yaml:"medium"`
}

func DefaultWeights() Weights {
	return Weights{
		Predicates:    2,
		Directives:    2,
		Anchors:       1,
		Alternations:  2,
		Quantifiers:   1,
		Wildcards:     1,
		PerClause:     0.5,
		PerClauseCap:  3,
		LengthDivisor: 250,
		LengthCap:     2,
		DepthDivisor:  4,
		DepthCap:      2,
	}
}

func DefaultThresholds() Thresholds {
	return Thresholds{Low: 3, Medium: 7}
}

// Analyzer scores query complexity and estimates evaluation cost. It is
// advisory: it never gates execution and never returns an error.
type Analyzer struct {
	weights    Weights
	thresholds Thresholds
}

func NewAnalyzer(w Weights, t Thresholds) *Analyzer {
	return &Analyzer{weights: w, thresholds: t}
}

func NewDefaultAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultWeights(), DefaultThresholds())
}

// Score computes the weighted complexity sum for a feature vector.
func (a *Analyzer) Score(f QueryFeatures) float64 {
	w := a.weights
	s := 0.0

	if f.HasPredicates {
		s += w.Predicates
	}
	if f.HasDirectives {
		s += w.Directives
	}
	if f.HasAnchors {
		s += w.Anchors
	}
	if f.AlternationCount > 0 {
		s += w.Alternations
	}
	if f.QuantifierCount > 0 {
		s += w.Quantifiers
	}
	if f.WildcardCount > 0 {
		s += w.Wildcards
	}

	s += min(float64(f.PredicateCount+f.DirectiveCount)*w.PerClause, w.PerClauseCap)
	s += min(float64(f.Length)/w.LengthDivisor, w.LengthCap)
	s += min(float64(f.NestingDepth)/w.DepthDivisor, w.DepthCap)

	return s
}

// Classify maps a raw score onto a tier.
func (a *Analyzer) Classify(score float64) Tier {
	switch {
	case score <= a.thresholds.Low:
		return TierLow
	case score <= a.thresholds.Medium:
		return TierMedium
	default:
		return TierHigh
	}
}

// AnalyzeComplexity scores and classifies in one call.
func (a *Analyzer) AnalyzeComplexity(f QueryFeatures) (float64, Tier) {
	score := a.Score(f)
	return score, a.Classify(score)
}
