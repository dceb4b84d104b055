package analysis

// Per-feature cost penalties in milliseconds, on top of the fixed base cost.
// The absolute numbers are advisory; what matters is the relative ordering
// they induce between queries.
const (
	baseCostMs          = 1.0
	predicateCostMs     = 0.5
	directiveCostMs     = 0.8
	alternationCostMs   = 1.2
	quantifierCostMs    = 0.7
	wildcardCostMs      = 0.5
	lengthCostDivisorMs = 1000.0

	mediumTierFactor = 1.5
	highTierFactor   = 2.5
)

// Estimate is the advisory cost projection for one query.
type Estimate struct {
	Complexity      Tier     `json:"complexity"`
	EstimatedTimeMs float64  `json:"estimatedTimeMs"`
	MemoryImpact    string   `json:"memoryImpact"`
	Recommendations []string `json:"recommendations"`
}

// EstimatePerformance projects evaluation cost from the feature vector:
// a fixed base cost plus per-feature penalties, scaled by the complexity
// tier, with a memory-impact tier derived from the clause counts.
func (a *Analyzer) EstimatePerformance(f QueryFeatures) Estimate {
	cost := baseCostMs
	cost += predicateCostMs * float64(f.PredicateCount)
	cost += directiveCostMs * float64(f.DirectiveCount)
	cost += alternationCostMs * float64(f.AlternationCount)
	cost += quantifierCostMs * float64(f.QuantifierCount)
	cost += wildcardCostMs * float64(f.WildcardCount)
	cost += float64(f.Length) / lengthCostDivisorMs

	_, tier := a.AnalyzeComplexity(f)
	switch tier {
	case TierMedium:
		cost *= mediumTierFactor
	case TierHigh:
		cost *= highTierFactor
	}

	return Estimate{
		Complexity:      tier,
		EstimatedTimeMs: cost,
		MemoryImpact:    memoryImpact(f),
		Recommendations: recommendations(f, tier),
	}
}

func memoryImpact(f QueryFeatures) string {
	switch clauses := f.PredicateCount + f.DirectiveCount; {
	case clauses > 6:
		return string(TierHigh)
	case clauses >= 3:
		return string(TierMedium)
	default:
		return string(TierLow)
	}
}

func recommendations(f QueryFeatures, tier Tier) []string {
	var recs []string
	if tier == TierHigh {
		recs = append(recs, "split the query into smaller patterns and combine their results")
	}
	if f.WildcardCount > 2 {
		recs = append(recs, "replace wildcard nodes with concrete node kinds where possible")
	}
	if f.DirectiveCount > 3 {
		recs = append(recs, "directives run per surviving match; filter first with predicates to shrink the working set")
	}
	if f.NestingDepth > 6 {
		recs = append(recs, "deeply nested patterns multiply matcher backtracking; flatten where the grammar allows")
	}
	return recs
}
