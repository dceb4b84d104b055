package analysis

import (
	"regexp"

	"github.com/treescope/treescope/internal/types"
)

// QueryFeatures are the structural signals the analyzer scores. They are
// derived once per query text by best-effort pattern inspection; this side of
// the engine never fails on malformed input.
type QueryFeatures struct {
	HasPredicates    bool `json:"hasPredicates"`
	HasDirectives    bool `json:"hasDirectives"`
	HasAnchors       bool `json:"hasAnchors"`
	AlternationCount int  `json:"alternationCount"`
	QuantifierCount  int  `json:"quantifierCount"`
	WildcardCount    int  `json:"wildcardCount"`
	PredicateCount   int  `json:"predicateCount"`
	DirectiveCount   int  `json:"directiveCount"`
	Length           int  `json:"length"`
	NestingDepth     int  `json:"nestingDepth"`
}

var (
	// clausePattern blanks out #kind?/#kind! clauses so their operands (which
	// legitimately contain brackets, dots, and quantifier characters) don't
	// pollute the structural feature counts.
	clausePattern = regexp.MustCompile(`#[A-Za-z][\w-]*[?!][^#)\n]*`)

	// anchorPattern matches a bare '.' anchor between pattern elements.
	anchorPattern = regexp.MustCompile(`(?m)(^|[\s(])\.($|[\s)])`)

	// wildcardPattern matches a bare '_' node.
	wildcardPattern = regexp.MustCompile(`(?m)(^|[\s(\[])_($|[\s)\].*+?])`)

	// quantifierPattern matches *, + or ? attached to a group, list, or
	// wildcard.
	quantifierPattern = regexp.MustCompile(`[)\]_][*+?]`)
)

// DetectFeatures computes the feature vector for one query. The clause lists
// are whatever the extractor produced for the same text; passing empty lists
// is fine and simply zeroes the clause-derived counts.
func DetectFeatures(queryText string, predicates []types.Predicate, directives []types.Directive) QueryFeatures {
	structural := clausePattern.ReplaceAllString(queryText, "")

	f := QueryFeatures{
		HasPredicates:    len(predicates) > 0,
		HasDirectives:    len(directives) > 0,
		PredicateCount:   len(predicates),
		DirectiveCount:   len(directives),
		Length:           len(queryText),
		NestingDepth:     maxParenDepth(structural),
		AlternationCount: countRune(structural, '['),
		QuantifierCount:  len(quantifierPattern.FindAllString(structural, -1)),
		WildcardCount:    len(wildcardPattern.FindAllString(structural, -1)),
	}
	f.HasAnchors = anchorPattern.MatchString(structural)
	return f
}

func maxParenDepth(s string) int {
	depth, maxDepth := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}
	return maxDepth
}

func countRune(s string, r byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == r {
			n++
		}
	}
	return n
}
