package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treescope/treescope/internal/types"
)

func matchWith(captures ...types.Capture) types.StructuralMatch {
	return types.StructuralMatch{Captures: captures}
}

func capture(name, kind, text string) types.Capture {
	return types.Capture{Name: name, Kind: kind, Text: text}
}

func TestFilter_EqAndNotEq(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("name", "identifier", "request")),
		matchWith(capture("name", "identifier", "response")),
	}

	kept, err := Filter(matches, []types.Predicate{
		{Kind: KindEq, Capture: "name", Value: "request", Values: []string{"request"}},
	})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "request", kept[0].Captures[0].Text)

	kept, err = Filter(matches, []types.Predicate{
		{Kind: KindNotEq, Capture: "name", Value: "request", Values: []string{"request"}},
	})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "response", kept[0].Captures[0].Text)
}

func TestFilter_ConjunctionNotDisjunction(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("name", "identifier", "request")),
	}

	// Two contradictory eq? predicates on the same capture must reject
	// everything: retention is a logical AND.
	kept, err := Filter(matches, []types.Predicate{
		{Kind: KindEq, Capture: "name", Value: "request", Values: []string{"request"}},
		{Kind: KindEq, Capture: "name", Value: "response", Values: []string{"response"}},
	})
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestFilter_MissingCaptureFailsThePredicate(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("name", "identifier", "request")),
	}

	kept, err := Filter(matches, []types.Predicate{
		{Kind: KindEq, Capture: "ghost", Value: "request", Values: []string{"request"}},
	})
	require.NoError(t, err)
	assert.Empty(t, kept)
}

func TestFilter_MatchAndNotMatch(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("fn", "identifier", "TestHelper")),
		matchWith(capture("fn", "identifier", "parseInput")),
	}

	kept, err := Filter(matches, []types.Predicate{
		{Kind: KindMatch, Capture: "fn", Value: "^Test", Values: []string{"^Test"}},
	})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "TestHelper", kept[0].Captures[0].Text)

	kept, err = Filter(matches, []types.Predicate{
		{Kind: KindNotMatch, Capture: "fn", Value: "^Test", Values: []string{"^Test"}},
	})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "parseInput", kept[0].Captures[0].Text)
}

func TestFilter_RegexIsUnanchored(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("c", "comment", "// TODO: fix")),
	}

	kept, err := Filter(matches, []types.Predicate{
		{Kind: KindMatch, Capture: "c", Value: "TODO", Values: []string{"TODO"}},
	})
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestFilter_InvalidRegexAbortsQuery(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("c", "comment", "text")),
	}

	kept, err := Filter(matches, []types.Predicate{
		{Kind: KindMatch, Capture: "c", Value: "[invalid regex", Values: []string{"[invalid regex"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid regex pattern")
	assert.Nil(t, kept)
}

func TestFilter_AnyOf(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("kw", "keyword", "if")),
		matchWith(capture("kw", "keyword", "return")),
	}

	kept, err := Filter(matches, []types.Predicate{
		{Kind: KindAnyOf, Capture: "kw", Values: []string{"if", "else", "while"}},
	})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "if", kept[0].Captures[0].Text)
}

func TestFilter_AnyOfEmptyListIsError(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("kw", "keyword", "if")),
	}

	_, err := Filter(matches, []types.Predicate{
		{Kind: KindAnyOf, Capture: "kw"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-empty list")
}

func TestFilter_AnyMatch(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("fn", "identifier", "getUserName")),
		matchWith(capture("fn", "identifier", "handleClick")),
		matchWith(capture("fn", "identifier", "render")),
	}

	kept, err := Filter(matches, []types.Predicate{
		{Kind: KindAnyMatch, Capture: "fn", Values: []string{"^get", "^handle"}},
	})
	require.NoError(t, err)
	assert.Len(t, kept, 2)
}

func TestFilter_IsAndNotIs(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("n", "identifier", "x")),
		matchWith(capture("n", "string_literal", "x")),
	}

	kept, err := Filter(matches, []types.Predicate{
		{Kind: KindIs, Capture: "n", Value: "identifier", Values: []string{"identifier"}},
	})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "identifier", kept[0].Captures[0].Kind)

	kept, err = Filter(matches, []types.Predicate{
		{Kind: KindNotIs, Capture: "n", Value: "identifier", Values: []string{"identifier"}},
	})
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "string_literal", kept[0].Captures[0].Kind)
}

func TestFilter_UnsupportedKind(t *testing.T) {
	_, err := Filter(nil, []types.Predicate{
		{Kind: "frobnicate", Capture: "x", Value: "y", Values: []string{"y"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported predicate type: frobnicate")
}

func TestFilter_MissingOperand(t *testing.T) {
	_, err := Filter(nil, []types.Predicate{
		{Kind: KindEq, Capture: "x"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a parameter")
}

func TestFilter_NoPredicatesKeepsEverything(t *testing.T) {
	matches := []types.StructuralMatch{
		matchWith(capture("a", "identifier", "x")),
		matchWith(capture("b", "identifier", "y")),
	}

	kept, err := Filter(matches, nil)
	require.NoError(t, err)
	assert.Equal(t, matches, kept)
}

func TestValidate(t *testing.T) {
	err := Validate([]types.Predicate{
		{Kind: KindMatch, Capture: "x", Value: "(unbalanced", Values: []string{"(unbalanced"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid regex pattern")

	assert.NoError(t, Validate([]types.Predicate{
		{Kind: KindEq, Capture: "x", Value: "y", Values: []string{"y"}},
	}))
}
