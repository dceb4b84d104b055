// Package directive applies transformation clauses to filtered matches.
//
// Directives run after predicate filtering, one directive at a time, in
// source order, against every match that carries the targeted capture. Each
// match owns its working state (per-capture text buffer and metadata map), so
// directives on one match can never alias another match's state. Any
// malformed directive aborts the whole query before any match is touched.
package directive

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/treescope/treescope/internal/types"
)

// Directive kinds understood by the applicator.
const (
	KindSet            = "set"
	KindStrip          = "strip"
	KindSelectAdjacent = "select-adjacent"
)

// Apply runs directives over the filtered match set and returns the enriched
// matches together with their processing records. The two slices are parallel
// and hold only matches that survived every select-adjacent! directive.
func Apply(matches []types.StructuralMatch, directives []types.Directive) ([]types.EnrichedMatch, []types.ProcessedMatch, error) {
	ops, err := compileAll(directives)
	if err != nil {
		return nil, nil, err
	}

	states := make([]*matchState, len(matches))
	for i, m := range matches {
		states[i] = newMatchState(m)
	}

	for _, op := range ops {
		for _, st := range states {
			if st.dropped {
				continue
			}
			op.apply(st)
		}
	}

	enriched := make([]types.EnrichedMatch, 0, len(states))
	processed := make([]types.ProcessedMatch, 0, len(states))
	for _, st := range states {
		if st.dropped {
			continue
		}
		enriched = append(enriched, st.match)
		processed = append(processed, types.ProcessedMatch{
			Match:             st.match,
			Transformations:   st.transformations,
			DirectivesApplied: st.applied,
		})
	}
	return enriched, processed, nil
}

// Validate compiles every directive and reports the first error without
// applying anything.
func Validate(directives []types.Directive) error {
	_, err := compileAll(directives)
	return err
}

// operation is one compiled directive, ready to run against a match state.
type operation interface {
	apply(st *matchState)
}

func compileAll(directives []types.Directive) ([]operation, error) {
	ops := make([]operation, len(directives))
	for i, d := range directives {
		op, err := compile(d)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	return ops, nil
}

func compile(d types.Directive) (operation, error) {
	switch d.Kind {
	case KindSet:
		if len(d.Params) < 2 {
			return nil, fmt.Errorf("set! directive requires at least 2 parameters")
		}
		return &setOp{capture: d.Captures[0], key: d.Params[0], value: d.Params[1]}, nil

	case KindStrip:
		if len(d.Params) < 1 {
			return nil, fmt.Errorf("strip! directive requires a regex pattern")
		}
		re, err := regexp.Compile(d.Params[0])
		if err != nil {
			return nil, fmt.Errorf("Invalid regex pattern: %s", d.Params[0])
		}
		return &stripOp{capture: d.Captures[0], pattern: d.Params[0], re: re}, nil

	case KindSelectAdjacent:
		if len(d.Captures) != 2 {
			return nil, fmt.Errorf("select-adjacent! directive requires 2 capture names")
		}
		return &selectAdjacentOp{first: d.Captures[0], second: d.Captures[1]}, nil

	default:
		return nil, fmt.Errorf("Unsupported directive type: %s", d.Kind)
	}
}

// matchState is the owned, per-match working state directives mutate.
type matchState struct {
	match           types.EnrichedMatch
	transformations []types.Transformation
	applied         []string
	appliedSet      map[string]bool
	dropped         bool
}

func newMatchState(m types.StructuralMatch) *matchState {
	captures := make([]types.EnrichedCapture, len(m.Captures))
	for i, c := range m.Captures {
		captures[i] = types.EnrichedCapture{
			Capture:     c,
			WorkingText: c.Text,
			Metadata:    map[string]string{},
		}
	}
	return &matchState{
		match:      types.EnrichedMatch{Captures: captures},
		appliedSet: map[string]bool{},
	}
}

func (st *matchState) markApplied(kind string) {
	if !st.appliedSet[kind] {
		st.appliedSet[kind] = true
		st.applied = append(st.applied, kind)
	}
}

func (st *matchState) record(t types.Transformation) {
	st.transformations = append(st.transformations, t)
	st.markApplied(t.Kind)
}

// setOp merges one key/value pair into the metadata of every capture with the
// target name. Later set! directives on the same key overwrite earlier ones.
type setOp struct {
	capture string
	key     string
	value   string
}

func (op *setOp) apply(st *matchState) {
	for i := range st.match.Captures {
		c := &st.match.Captures[i]
		if c.Name != op.capture {
			continue
		}
		c.Metadata[op.key] = op.value
		st.record(types.Transformation{
			Kind:        KindSet,
			Description: fmt.Sprintf("set metadata %q = %q on @%s", op.key, op.value, op.capture),
			Before:      c.WorkingText,
			After:       c.WorkingText,
		})
	}
}

// stripOp removes the first occurrence of the pattern from the capture's
// current working text. Not a global replace: sequential strip! directives
// compose, each seeing the previous one's output.
type stripOp struct {
	capture string
	pattern string
	re      *regexp.Regexp
}

func (op *stripOp) apply(st *matchState) {
	for i := range st.match.Captures {
		c := &st.match.Captures[i]
		if c.Name != op.capture {
			continue
		}
		loc := op.re.FindStringIndex(c.WorkingText)
		if loc == nil {
			continue
		}
		before := c.WorkingText
		c.WorkingText = before[:loc[0]] + before[loc[1]:]
		st.record(types.Transformation{
			Kind:        KindStrip,
			Description: fmt.Sprintf("removed first match of %q from @%s", op.pattern, op.capture),
			Before:      before,
			After:       c.WorkingText,
		})
	}
}

// selectAdjacentOp keeps a match only when both named captures are present
// and immediately consecutive by source position, with no other capture
// between them. Adjacency here is positional, not structural: the engine
// never sees the syntax tree, only capture positions.
type selectAdjacentOp struct {
	first  string
	second string
}

func (op *selectAdjacentOp) apply(st *matchState) {
	order := positionOrder(st.match.Captures)

	ia, ib := -1, -1
	for rank, idx := range order {
		name := st.match.Captures[idx].Name
		if ia < 0 && name == op.first {
			ia = rank
		}
		if ib < 0 && name == op.second {
			ib = rank
		}
	}

	if ia < 0 || ib < 0 || absDiff(ia, ib) != 1 {
		st.dropped = true
		return
	}
	st.markApplied(KindSelectAdjacent)
}

// positionOrder returns capture indices sorted by start position, stable on
// the matcher's original order for identical positions.
func positionOrder(captures []types.EnrichedCapture) []int {
	order := make([]int, len(captures))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return captures[order[a]].Start.Before(captures[order[b]].Start)
	})
	return order
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
