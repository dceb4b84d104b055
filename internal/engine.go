package internal

import (
	"time"

	"github.com/treescope/treescope/internal/analysis"
	"github.com/treescope/treescope/internal/clause"
	"github.com/treescope/treescope/internal/directive"
	"github.com/treescope/treescope/internal/predicate"
	tt "github.com/treescope/treescope/internal/types"
)

// Engine coordinates the evaluation pipeline: clause extraction, predicate
// filtering, directive application, and advisory analysis. Evaluate and
// Analyze are pure with respect to their arguments, so one Engine may serve
// concurrent callers.
type Engine struct {
	analyzer           *analysis.Analyzer
	ignoredSuggestions map[string]bool
}

// NewEngine creates an engine with the given analyzer tuning.
func NewEngine(weights analysis.Weights, thresholds analysis.Thresholds) *Engine {
	return &Engine{
		analyzer:           analysis.NewAnalyzer(weights, thresholds),
		ignoredSuggestions: map[string]bool{},
	}
}

// NewDefaultEngine creates an engine with the default analyzer tuning.
func NewDefaultEngine() *Engine {
	return NewEngine(analysis.DefaultWeights(), analysis.DefaultThresholds())
}

// IgnoreSuggestion suppresses one suggestion type in analysis reports.
func (e *Engine) IgnoreSuggestion(name string) {
	if e.ignoredSuggestions == nil {
		e.ignoredSuggestions = map[string]bool{}
	}
	e.ignoredSuggestions[name] = true
}

// Evaluate runs one query's clauses against one set of structural matches.
// Any clause error fails the whole query: Success is false, Errors is
// non-empty, and no matches are returned. There is no partial-success mode,
// since later clauses may depend on the effects of earlier ones.
func (e *Engine) Evaluate(queryText string, matches []tt.StructuralMatch) *tt.Result {
	start := time.Now()

	predicates, directives, err := clause.Extract(queryText)
	if err != nil {
		return failed(err)
	}

	filtered, err := predicate.Filter(matches, predicates)
	if err != nil {
		return failed(err)
	}
	queryTime := time.Since(start)

	enriched, processed, err := directive.Apply(filtered, directives)
	if err != nil {
		return failed(err)
	}

	return &tt.Result{
		Success:          true,
		Matches:          enriched,
		ProcessedMatches: processed,
		Errors:           []string{},
		Predicates:       predicates,
		Directives:       directives,
		Performance: &tt.Performance{
			QueryTimeMs:         millis(queryTime),
			TotalTimeMs:         millis(time.Since(start)),
			MatchCount:          len(enriched),
			PredicatesProcessed: len(predicates),
			DirectivesApplied:   len(directives),
		},
	}
}

// Analyze produces the advisory complexity report for one query text.
func (e *Engine) Analyze(queryText string) analysis.Report {
	return e.analyzer.Analyze(queryText, e.ignoredSuggestions)
}

// Statistics aggregates clause usage over a batch of query texts.
func (e *Engine) Statistics(queries []string) analysis.Statistics {
	return e.analyzer.AggregateStatistics(queries)
}

func failed(err error) *tt.Result {
	return &tt.Result{
		Success: false,
		Matches: []tt.EnrichedMatch{},
		Errors:  []string{err.Error()},
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
