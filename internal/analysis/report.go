package analysis

// Report bundles every advisory output for one query: the detected feature
// vector, the raw complexity score and tier, the cost estimate, and any
// optimization suggestions.
type Report struct {
	Features    QueryFeatures `json:"features"`
	Score       float64       `json:"score"`
	Tier        Tier          `json:"tier"`
	Estimate    Estimate      `json:"estimate"`
	Suggestions []Suggestion  `json:"suggestions,omitempty"`
}

// Analyze produces the full report for one query text. Clause extraction is
// best-effort here; a malformed query still gets a feature-based report.
func (a *Analyzer) Analyze(queryText string, ignoredSuggestions map[string]bool) Report {
	predicates, directives := ExtractForAnalysis(queryText)
	f := DetectFeatures(queryText, predicates, directives)
	score, tier := a.AnalyzeComplexity(f)

	return Report{
		Features:    f,
		Score:       score,
		Tier:        tier,
		Estimate:    a.EstimatePerformance(f),
		Suggestions: a.Suggestions(queryText, f, predicates, directives, ignoredSuggestions),
	}
}

// ParseTier converts a user-supplied tier name into a Tier.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierLow, TierMedium, TierHigh:
		return Tier(s), true
	}
	return "", false
}
