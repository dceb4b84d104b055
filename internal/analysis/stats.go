package analysis

import (
	"github.com/treescope/treescope/internal/clause"
	"github.com/treescope/treescope/internal/types"
)

// Statistics aggregates clause and feature usage across a batch of queries.
type Statistics struct {
	TotalQueries       int            `json:"totalQueries"`
	QueriesWithClauses int            `json:"queriesWithClauses"`
	MalformedQueries   int            `json:"malformedQueries"`
	TotalPredicates    int            `json:"totalPredicates"`
	TotalDirectives    int            `json:"totalDirectives"`
	PredicateKinds     map[string]int `json:"predicateKinds"`
	DirectiveKinds     map[string]int `json:"directiveKinds"`
	TierCounts         map[Tier]int   `json:"tierCounts"`
	AverageComplexity  float64        `json:"averageComplexity"`
}

// AggregateStatistics analyzes a batch of query texts. Queries whose clauses
// fail to extract are counted as malformed and still contribute their
// structural features; the aggregation never fails.
func (a *Analyzer) AggregateStatistics(queries []string) Statistics {
	st := Statistics{
		PredicateKinds: map[string]int{},
		DirectiveKinds: map[string]int{},
		TierCounts:     map[Tier]int{},
	}

	scoreSum := 0.0
	for _, q := range queries {
		st.TotalQueries++

		predicates, directives, err := clause.Extract(q)
		if err != nil {
			st.MalformedQueries++
			predicates, directives = nil, nil
		}
		if len(predicates)+len(directives) > 0 {
			st.QueriesWithClauses++
		}

		st.TotalPredicates += len(predicates)
		st.TotalDirectives += len(directives)
		for _, p := range predicates {
			st.PredicateKinds[p.Kind]++
		}
		for _, d := range directives {
			st.DirectiveKinds[d.Kind]++
		}

		score, tier := a.AnalyzeComplexity(DetectFeatures(q, predicates, directives))
		st.TierCounts[tier]++
		scoreSum += score
	}

	if st.TotalQueries > 0 {
		st.AverageComplexity = scoreSum / float64(st.TotalQueries)
	}
	return st
}

// ExtractForAnalysis is the forgiving extraction used by advisory paths:
// it returns whatever clauses parse and swallows errors.
func ExtractForAnalysis(queryText string) ([]types.Predicate, []types.Directive) {
	predicates, directives, err := clause.Extract(queryText)
	if err != nil {
		return nil, nil
	}
	return predicates, directives
}
