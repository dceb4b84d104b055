package clause

import (
	"fmt"

	"github.com/treescope/treescope/internal/types"
)

// Clause markers. A '?' suffix marks a predicate (filter), a '!' suffix marks
// a directive (transformation).
const (
	predicateMarker = '?'
	directiveMarker = '!'
)

// Extract scans queryText for annotation clauses of the form
//
//	#<kind>? @<capture> <params...>   (predicate)
//	#<kind>! @<capture> <params...>   (directive)
//
// and returns them in source order. Params are double-quoted strings,
// bracketed lists of double-quoted strings, or further @capture references.
// Everything outside clause syntax is treated as opaque pattern text and
// skipped. Unknown clause kinds are extracted as-is; semantic validation
// belongs to the evaluator and applicator. A clause without any @capture
// reference is a hard error.
func Extract(queryText string) ([]types.Predicate, []types.Directive, error) {
	s := &scanner{input: queryText}

	var predicates []types.Predicate
	var directives []types.Directive

	for s.pos < len(s.input) {
		if s.input[s.pos] != '#' {
			s.pos++
			continue
		}

		start := s.pos
		kind, marker, ok := s.scanKind()
		if !ok {
			// '#' that does not open a well-formed clause is opaque text.
			s.pos++
			continue
		}

		captures, params, err := s.scanParams()
		if err != nil {
			return nil, nil, err
		}
		if len(captures) == 0 {
			return nil, nil, fmt.Errorf("%s%c clause at offset %d is missing a capture reference", kind, marker, start)
		}

		if marker == predicateMarker {
			p := types.Predicate{
				Kind:    kind,
				Capture: captures[0],
				Values:  params,
				Pos:     start,
			}
			if len(params) > 0 {
				p.Value = params[0]
			}
			predicates = append(predicates, p)
		} else {
			directives = append(directives, types.Directive{
				Kind:     kind,
				Captures: captures,
				Params:   params,
				Pos:      start,
			})
		}
	}

	return predicates, directives, nil
}

// scanner walks the raw query text byte by byte, the same way the pattern
// lexer does: position-based, no backtracking beyond one clause.
type scanner struct {
	input string
	pos   int
}

// scanKind consumes "#kind?" or "#kind!" and returns the kind name and the
// marker byte. If the text at the current position is not a well-formed
// clause head, it restores the position and reports ok=false.
func (s *scanner) scanKind() (kind string, marker byte, ok bool) {
	start := s.pos
	s.pos++ // consume '#'

	nameStart := s.pos
	for s.pos < len(s.input) && isKindChar(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == nameStart || s.pos >= len(s.input) {
		s.pos = start
		return "", 0, false
	}

	m := s.input[s.pos]
	if m != predicateMarker && m != directiveMarker {
		s.pos = start
		return "", 0, false
	}
	s.pos++

	return s.input[nameStart : s.pos-1], m, true
}

// scanParams consumes the parameter list following a clause head: any mix of
// @capture references, quoted strings, and bracketed string lists. It stops
// at the clause's closing ')', at the next '#', or at the first byte that
// belongs to none of the parameter shapes.
func (s *scanner) scanParams() (captures, params []string, err error) {
	for s.pos < len(s.input) {
		c := s.input[s.pos]

		switch {
		case isWhitespace(c):
			s.pos++

		case c == '@':
			s.pos++
			nameStart := s.pos
			for s.pos < len(s.input) && isCaptureChar(s.input[s.pos]) {
				s.pos++
			}
			if s.pos == nameStart {
				return nil, nil, fmt.Errorf("empty capture reference at offset %d", nameStart-1)
			}
			captures = append(captures, s.input[nameStart:s.pos])

		case c == '"':
			str, serr := s.scanString()
			if serr != nil {
				return nil, nil, serr
			}
			params = append(params, str)

		case c == '[':
			elems, aerr := s.scanList()
			if aerr != nil {
				return nil, nil, aerr
			}
			params = append(params, elems...)

		case c == ')':
			s.pos++
			return captures, params, nil

		default:
			// Next clause or resumed pattern text; the clause ends here.
			return captures, params, nil
		}
	}
	return captures, params, nil
}

// scanString consumes a double-quoted literal, honoring \" and \\ escapes.
func (s *scanner) scanString() (string, error) {
	start := s.pos
	s.pos++ // consume opening quote

	var out []byte
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if c == '\\' && s.pos+1 < len(s.input) {
			next := s.input[s.pos+1]
			if next == '"' || next == '\\' {
				out = append(out, next)
				s.pos += 2
				continue
			}
		}
		if c == '"' {
			s.pos++
			return string(out), nil
		}
		out = append(out, c)
		s.pos++
	}
	return "", fmt.Errorf("unterminated string literal at offset %d", start)
}

// scanList consumes a bracketed list of quoted strings, split on commas.
func (s *scanner) scanList() ([]string, error) {
	start := s.pos
	s.pos++ // consume '['

	var elems []string
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		switch {
		case c == ']':
			s.pos++
			return elems, nil
		case c == '"':
			str, err := s.scanString()
			if err != nil {
				return nil, err
			}
			elems = append(elems, str)
		case c == ',' || isWhitespace(c):
			s.pos++
		default:
			return nil, fmt.Errorf("unexpected %q inside list at offset %d", c, s.pos)
		}
	}
	return nil, fmt.Errorf("unterminated list at offset %d", start)
}

func isKindChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}

func isCaptureChar(c byte) bool {
	return isKindChar(c) || c == '.'
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
