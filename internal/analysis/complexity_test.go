package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treescope/treescope/internal/clause"
)

func featuresFor(t *testing.T, queryText string) QueryFeatures {
	t.Helper()
	predicates, directives, err := clause.Extract(queryText)
	require.NoError(t, err)
	return DetectFeatures(queryText, predicates, directives)
}

func TestDetectFeatures(t *testing.T) {
	f := featuresFor(t, "(call_expression\n  function: (identifier) @fn\n  (#eq? @fn \"open\")\n  (#set! @fn \"checked\" \"yes\"))")

	assert.True(t, f.HasPredicates)
	assert.True(t, f.HasDirectives)
	assert.Equal(t, 1, f.PredicateCount)
	assert.Equal(t, 1, f.DirectiveCount)
	assert.Equal(t, 2, f.NestingDepth)
}

func TestDetectFeatures_StructuralSignals(t *testing.T) {
	f := featuresFor(t, "[ (if_statement) (while_statement) ] @branch (block . (statement) @first) (_)* @rest")

	assert.Equal(t, 1, f.AlternationCount)
	assert.True(t, f.HasAnchors)
	assert.GreaterOrEqual(t, f.QuantifierCount, 1)
	assert.GreaterOrEqual(t, f.WildcardCount, 1)
}

func TestDetectFeatures_ClauseOperandsDoNotPolluteStructure(t *testing.T) {
	// The bracketed any-of? list must not count as an alternation group.
	f := featuresFor(t, `(identifier) @kw (#any-of? @kw ["if", "else"])`)
	assert.Equal(t, 0, f.AlternationCount)
}

func TestClassifyThresholds(t *testing.T) {
	a := NewDefaultAnalyzer()

	assert.Equal(t, TierLow, a.Classify(3))
	assert.Equal(t, TierMedium, a.Classify(3.5))
	assert.Equal(t, TierMedium, a.Classify(7))
	assert.Equal(t, TierHigh, a.Classify(7.1))
}

func TestScore_SimpleQueryIsLow(t *testing.T) {
	a := NewDefaultAnalyzer()
	_, tier := a.AnalyzeComplexity(featuresFor(t, "(identifier) @name"))
	assert.Equal(t, TierLow, tier)
}

func TestScore_MonotoneInAddedClauses(t *testing.T) {
	a := NewDefaultAnalyzer()

	base := "(identifier) @name"
	richer := base
	prev := a.Score(featuresFor(t, base))

	additions := []string{
		` (#eq? @name "x")`,
		` (#match? @name "^x")`,
		` (#set! @name "k" "v")`,
		` (#strip! @name "x")`,
	}
	for _, add := range additions {
		richer += add
		next := a.Score(featuresFor(t, richer))
		assert.GreaterOrEqual(t, next, prev, "adding %q lowered the score", add)
		prev = next
	}
}

func TestScore_MonotoneInStructuralFeatures(t *testing.T) {
	a := NewDefaultAnalyzer()

	plain := a.Score(featuresFor(t, "(identifier) @name"))
	withAlternation := a.Score(featuresFor(t, "[ (identifier) (field_expression) ] @name"))
	withQuantifier := a.Score(featuresFor(t, "[ (identifier) (field_expression) ]+ @name"))

	assert.GreaterOrEqual(t, withAlternation, plain)
	assert.GreaterOrEqual(t, withQuantifier, withAlternation)
}

func TestScore_TierNeverDecreasesWithMoreClauses(t *testing.T) {
	a := NewDefaultAnalyzer()

	query := "(identifier) @n"
	_, prevTier := a.AnalyzeComplexity(featuresFor(t, query))
	for i := 0; i < 10; i++ {
		query += ` (#eq? @n "v")`
		_, tier := a.AnalyzeComplexity(featuresFor(t, query))
		assert.False(t, prevTier.Exceeds(tier), "tier decreased from %s to %s", prevTier, tier)
		prevTier = tier
	}
}

func TestEstimatePerformance_ScalesWithTier(t *testing.T) {
	a := NewDefaultAnalyzer()

	simple := a.EstimatePerformance(featuresFor(t, "(identifier) @n"))
	heavy := a.EstimatePerformance(featuresFor(t,
		strings.Repeat("(call (_)* ", 4)+strings.Repeat(")", 8)+
			` [ (a) (b) ] @n (#match? @n "x") (#set! @n "k" "v") (#strip! @n "y") (#eq? @n "z")`))

	assert.Equal(t, TierLow, simple.Complexity)
	assert.True(t, heavy.Complexity.Exceeds(simple.Complexity))
	assert.Greater(t, heavy.EstimatedTimeMs, simple.EstimatedTimeMs)
}

func TestEstimatePerformance_MemoryImpactTiers(t *testing.T) {
	a := NewDefaultAnalyzer()

	assert.Equal(t, "low", a.EstimatePerformance(QueryFeatures{PredicateCount: 1}).MemoryImpact)
	assert.Equal(t, "medium", a.EstimatePerformance(QueryFeatures{PredicateCount: 2, DirectiveCount: 2}).MemoryImpact)
	assert.Equal(t, "high", a.EstimatePerformance(QueryFeatures{PredicateCount: 4, DirectiveCount: 4}).MemoryImpact)
}
