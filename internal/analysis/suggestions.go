package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/treescope/treescope/internal/directive"
	"github.com/treescope/treescope/internal/predicate"
	"github.com/treescope/treescope/internal/types"
)

// Suggestion describes one optimization opportunity detected in a query.
type Suggestion struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Example     string `json:"example,omitempty"`
}

// Suggestion heuristic parameters.
const (
	wildcardSuggestionFloor    = 3 // more than this many wildcards
	eqConsolidationFloor       = 3 // more than this many eq? predicates
	alternationSuggestionFloor = 2
	stripConsolidationFloor    = 2
	regexComplexityLimit       = 8.0
)

// suggestionInput bundles everything a heuristic may inspect.
type suggestionInput struct {
	query      string
	features   QueryFeatures
	predicates []types.Predicate
	directives []types.Directive
}

type suggestionFunc func(in suggestionInput) *Suggestion

// Each heuristic is independent and order-insensitive; every one that fires
// is emitted. Registered by type name so callers can suppress individual
// suggestion types by configuration.
var suggestionHeuristics = map[string]suggestionFunc{
	"wildcard-reduction":      suggestWildcardReduction,
	"predicate-consolidation": suggestPredicateConsolidation,
	"regex-simplification":    suggestRegexSimplification,
	"alternation-reduction":   suggestAlternationReduction,
	"quantifier-nesting":      suggestQuantifierNesting,
	"strip-consolidation":     suggestStripConsolidation,
}

// Suggestions runs every registered heuristic against the query. Types listed
// in ignored are skipped. Output is sorted by type for determinism.
func (a *Analyzer) Suggestions(queryText string, f QueryFeatures, predicates []types.Predicate, directives []types.Directive, ignored map[string]bool) []Suggestion {
	in := suggestionInput{
		query:      queryText,
		features:   f,
		predicates: predicates,
		directives: directives,
	}

	names := make([]string, 0, len(suggestionHeuristics))
	for name := range suggestionHeuristics {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Suggestion
	for _, name := range names {
		if ignored[name] {
			continue
		}
		if s := suggestionHeuristics[name](in); s != nil {
			s.Type = name
			out = append(out, *s)
		}
	}
	return out
}

func suggestWildcardReduction(in suggestionInput) *Suggestion {
	if in.features.WildcardCount <= wildcardSuggestionFloor {
		return nil
	}
	return &Suggestion{
		Description: fmt.Sprintf("query uses %d wildcard nodes; each one widens the match frontier", in.features.WildcardCount),
		Impact:      string(TierHigh),
		Example:     `replace (_ (_)) with concrete kinds like (call_expression (identifier))`,
	}
}

func suggestPredicateConsolidation(in suggestionInput) *Suggestion {
	eqCount := 0
	captures := map[string]bool{}
	for _, p := range in.predicates {
		if p.Kind == predicate.KindEq {
			eqCount++
			captures[p.Capture] = true
		}
	}
	if eqCount <= eqConsolidationFloor {
		return nil
	}
	return &Suggestion{
		Description: fmt.Sprintf("%d eq? predicates over %d capture(s) can collapse into any-of?", eqCount, len(captures)),
		Impact:      string(TierMedium),
		Example:     `(#any-of? @name ["foo", "bar", "baz"])`,
	}
}

func suggestRegexSimplification(in suggestionInput) *Suggestion {
	worst := 0.0
	var worstPattern string
	for _, p := range in.predicates {
		if p.Kind != predicate.KindMatch && p.Kind != predicate.KindNotMatch && p.Kind != predicate.KindAnyMatch {
			continue
		}
		for _, v := range p.Values {
			if score := regexComplexity(v); score > worst {
				worst, worstPattern = score, v
			}
		}
	}
	if worst <= regexComplexityLimit {
		return nil
	}
	return &Suggestion{
		Description: fmt.Sprintf("regex operand %q scores %.1f on the complexity scale (limit %.0f)", worstPattern, worst, regexComplexityLimit),
		Impact:      string(TierMedium),
		Example:     `prefer anchored literals or eq?/any-of? over broad regex alternations`,
	}
}

func suggestAlternationReduction(in suggestionInput) *Suggestion {
	if in.features.AlternationCount <= alternationSuggestionFloor {
		return nil
	}
	return &Suggestion{
		Description: fmt.Sprintf("query contains %d alternation groups; each multiplies the patterns the matcher tries", in.features.AlternationCount),
		Impact:      string(TierMedium),
		Example:     `split alternation-heavy patterns into separate queries`,
	}
}

var nestedQuantifierPattern = regexp.MustCompile(`[*+][)\]]*[*+]`)

func suggestQuantifierNesting(in suggestionInput) *Suggestion {
	structural := clausePattern.ReplaceAllString(in.query, "")
	if !nestedQuantifierPattern.MatchString(structural) {
		return nil
	}
	return &Suggestion{
		Description: "nested quantifier sequence detected; quantified groups inside quantified groups are a classic backtracking blow-up",
		Impact:      string(TierHigh),
		Example:     `((comment)* (function))* is better expressed as a single repeated block`,
	}
}

func suggestStripConsolidation(in suggestionInput) *Suggestion {
	strips := 0
	for _, d := range in.directives {
		if d.Kind == directive.KindStrip {
			strips++
		}
	}
	if strips <= stripConsolidationFloor {
		return nil
	}
	return &Suggestion{
		Description: fmt.Sprintf("%d strip! directives run sequentially over the same working text; one combined pattern is cheaper", strips),
		Impact:      string(TierLow),
		Example:     `(#strip! @comment "^//\\s*(TODO:)?\\s*")`,
	}
}

// regexComplexity is a rough cost score for a regex operand: length plus a
// surcharge per metacharacter. Patterns that fail to compile are scored like
// any other text; the analyzer never rejects input.
func regexComplexity(pattern string) float64 {
	score := float64(len(pattern)) * 0.1
	score += float64(strings.Count(pattern, "|")) * 1.5
	for _, c := range pattern {
		switch c {
		case '*', '+', '?':
			score += 1.0
		case '[', '(', '{':
			score += 0.5
		case '.', '^', '$', '\\':
			score += 0.25
		}
	}
	return score
}
