package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treescope/treescope/internal/types"
)

func identifierMatch(text string) types.StructuralMatch {
	return types.StructuralMatch{Captures: []types.Capture{
		{Name: "identifier", Kind: "identifier", Text: text},
	}}
}

func TestEvaluate_FilterThenTransform(t *testing.T) {
	e := NewDefaultEngine()

	query := "(identifier) @identifier\n" +
		"(#eq? @identifier \"testVariable\")\n" +
		"(#set! @identifier \"category\" \"variable\")"
	matches := []types.StructuralMatch{
		identifierMatch("testVariable"),
		identifierMatch("otherVariable"),
	}

	res := e.Evaluate(query, matches)

	require.True(t, res.Success)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Matches, 1)

	c, ok := res.Matches[0].Capture("identifier")
	require.True(t, ok)
	assert.Equal(t, "testVariable", c.Text)
	assert.Equal(t, map[string]string{"category": "variable"}, c.Metadata)

	require.Len(t, res.Predicates, 1)
	require.Len(t, res.Directives, 1)
	assert.Equal(t, "eq", res.Predicates[0].Kind)
	assert.Equal(t, "set", res.Directives[0].Kind)

	require.NotNil(t, res.Performance)
	assert.Equal(t, 1, res.Performance.MatchCount)
	assert.Equal(t, 1, res.Performance.PredicatesProcessed)
	assert.Equal(t, 1, res.Performance.DirectivesApplied)
	assert.GreaterOrEqual(t, res.Performance.TotalTimeMs, res.Performance.QueryTimeMs)
}

func TestEvaluate_NoClausesPassesMatchesThrough(t *testing.T) {
	e := NewDefaultEngine()

	matches := []types.StructuralMatch{identifierMatch("x"), identifierMatch("y")}
	res := e.Evaluate("(identifier) @identifier", matches)

	require.True(t, res.Success)
	assert.Len(t, res.Matches, 2)
	assert.Empty(t, res.Predicates)
	assert.Empty(t, res.Directives)
}

func TestEvaluate_ClauseErrorFailsWholeQuery(t *testing.T) {
	e := NewDefaultEngine()

	res := e.Evaluate(`(identifier) @n (#match? @n "[bad")`, []types.StructuralMatch{identifierMatch("x")})

	assert.False(t, res.Success)
	assert.Empty(t, res.Matches)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Invalid regex pattern: [bad")
	assert.Nil(t, res.Performance)
}

func TestEvaluate_MalformedQueryFails(t *testing.T) {
	e := NewDefaultEngine()

	res := e.Evaluate(`(#eq? @n "oops`, nil)

	assert.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "unterminated string literal")
}

func TestEvaluate_DirectiveErrorFailsWholeQuery(t *testing.T) {
	e := NewDefaultEngine()

	res := e.Evaluate(`(identifier) @n (#set! @n "only-key")`, []types.StructuralMatch{identifierMatch("x")})

	assert.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "requires at least 2 parameters")
}

func TestEngine_AnalyzeAndIgnoreSuggestion(t *testing.T) {
	e := NewDefaultEngine()
	query := "(_) @a (_) @b (_) @c (_) @d"

	rep := e.Analyze(query)
	found := false
	for _, s := range rep.Suggestions {
		if s.Type == "wildcard-reduction" {
			found = true
		}
	}
	assert.True(t, found)

	e.IgnoreSuggestion("wildcard-reduction")
	rep = e.Analyze(query)
	for _, s := range rep.Suggestions {
		assert.NotEqual(t, "wildcard-reduction", s.Type)
	}
}

func TestEngine_Statistics(t *testing.T) {
	e := NewDefaultEngine()

	st := e.Statistics([]string{
		`(identifier) @n (#eq? @n "x")`,
		`(comment) @c`,
	})
	assert.Equal(t, 2, st.TotalQueries)
	assert.Equal(t, 1, st.QueriesWithClauses)
}
