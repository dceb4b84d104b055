// Package predicate evaluates filter clauses against structural matches.
//
// A match is retained only when every predicate targeting one of its captures
// evaluates to true (conjunction). A predicate whose target capture is absent
// from the match fails that match; it is not an error. Malformed predicates
// (unsupported kind, missing operand, uncompilable regex) abort the whole
// query before any match is examined.
package predicate

import (
	"fmt"
	"regexp"

	"github.com/treescope/treescope/internal/types"
)

// Predicate kinds understood by the evaluator.
const (
	KindEq       = "eq"
	KindNotEq    = "not-eq"
	KindMatch    = "match"
	KindNotMatch = "not-match"
	KindAnyOf    = "any-of"
	KindAnyEq    = "any-eq"
	KindAnyMatch = "any-match"
	KindIs       = "is"
	KindNotIs    = "not-is"
)

// evalFunc decides whether a single capture satisfies a predicate.
type evalFunc func(c types.Capture) bool

// compiler validates a predicate's operands and produces its evalFunc.
type compiler func(p types.Predicate) (evalFunc, error)

var kindCompilers = map[string]compiler{
	KindEq:       compileTextCompare(false),
	KindNotEq:    compileTextCompare(true),
	KindMatch:    compileRegexTest(false),
	KindNotMatch: compileRegexTest(true),
	KindAnyOf:    compileAnyText,
	KindAnyEq:    compileAnyText,
	KindAnyMatch: compileAnyRegex,
	KindIs:       compileKindCompare(false),
	KindNotIs:    compileKindCompare(true),
}

// Filter returns the matches for which every predicate holds, preserving
// input order. All predicates are validated and compiled up front, so a
// single malformed clause fails the query before any filtering happens.
func Filter(matches []types.StructuralMatch, predicates []types.Predicate) ([]types.StructuralMatch, error) {
	if len(predicates) == 0 {
		return matches, nil
	}

	evals, err := compileAll(predicates)
	if err != nil {
		return nil, err
	}

	kept := make([]types.StructuralMatch, 0, len(matches))
	for _, m := range matches {
		if satisfiesAll(m, predicates, evals) {
			kept = append(kept, m)
		}
	}
	return kept, nil
}

// Validate compiles every predicate and reports the first error, without
// touching any match. Used by callers that want fail-fast semantics before
// spending time on match resolution.
func Validate(predicates []types.Predicate) error {
	_, err := compileAll(predicates)
	return err
}

func compileAll(predicates []types.Predicate) ([]evalFunc, error) {
	evals := make([]evalFunc, len(predicates))
	for i, p := range predicates {
		compile, ok := kindCompilers[p.Kind]
		if !ok {
			return nil, fmt.Errorf("Unsupported predicate type: %s", p.Kind)
		}
		fn, err := compile(p)
		if err != nil {
			return nil, err
		}
		evals[i] = fn
	}
	return evals, nil
}

func satisfiesAll(m types.StructuralMatch, predicates []types.Predicate, evals []evalFunc) bool {
	for i, p := range predicates {
		c, ok := m.Capture(p.Capture)
		if !ok {
			return false
		}
		if !evals[i](c) {
			return false
		}
	}
	return true
}

func compileTextCompare(negate bool) compiler {
	return func(p types.Predicate) (evalFunc, error) {
		if err := requireOperand(p); err != nil {
			return nil, err
		}
		want := p.Value
		return func(c types.Capture) bool {
			return (c.Text == want) != negate
		}, nil
	}
}

func compileKindCompare(negate bool) compiler {
	return func(p types.Predicate) (evalFunc, error) {
		if err := requireOperand(p); err != nil {
			return nil, err
		}
		want := p.Value
		return func(c types.Capture) bool {
			return (c.Kind == want) != negate
		}, nil
	}
}

func compileRegexTest(negate bool) compiler {
	return func(p types.Predicate) (evalFunc, error) {
		if err := requireOperand(p); err != nil {
			return nil, err
		}
		re, err := regexp.Compile(p.Value)
		if err != nil {
			return nil, fmt.Errorf("Invalid regex pattern: %s", p.Value)
		}
		return func(c types.Capture) bool {
			return re.MatchString(c.Text) != negate
		}, nil
	}
}

func compileAnyText(p types.Predicate) (evalFunc, error) {
	if len(p.Values) == 0 {
		return nil, fmt.Errorf("%s? predicate requires a non-empty list of values", p.Kind)
	}
	values := p.Values
	return func(c types.Capture) bool {
		for _, v := range values {
			if c.Text == v {
				return true
			}
		}
		return false
	}, nil
}

func compileAnyRegex(p types.Predicate) (evalFunc, error) {
	if len(p.Values) == 0 {
		return nil, fmt.Errorf("%s? predicate requires a non-empty list of values", p.Kind)
	}
	res := make([]*regexp.Regexp, len(p.Values))
	for i, v := range p.Values {
		re, err := regexp.Compile(v)
		if err != nil {
			return nil, fmt.Errorf("Invalid regex pattern: %s", v)
		}
		res[i] = re
	}
	return func(c types.Capture) bool {
		for _, re := range res {
			if re.MatchString(c.Text) {
				return true
			}
		}
		return false
	}, nil
}

func requireOperand(p types.Predicate) error {
	if len(p.Values) == 0 {
		return fmt.Errorf("%s? predicate requires a parameter", p.Kind)
	}
	return nil
}
