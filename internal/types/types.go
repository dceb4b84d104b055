package types

// Position is a zero-based row/column location inside the source the
// structural matcher ran against.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Before reports whether p comes strictly before other in source order.
func (p Position) Before(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Column < other.Column
}

// Capture is a named handle to one node of an externally produced structural
// match. It is read-only to this engine.
type Capture struct {
	Name  string   `json:"name"`
	Kind  string   `json:"kind"`
	Text  string   `json:"text"`
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// StructuralMatch is one pattern occurrence reported by the upstream matcher:
// an ordered collection of captures. Capture names are not necessarily unique
// within a match.
type StructuralMatch struct {
	Captures []Capture `json:"captures"`
}

// Capture returns the first capture with the given name.
func (m StructuralMatch) Capture(name string) (Capture, bool) {
	for _, c := range m.Captures {
		if c.Name == name {
			return c, true
		}
	}
	return Capture{}, false
}

// Predicate is a boolean filter clause (#kind?) parsed out of a query.
// Values holds every string operand in source order; Value mirrors the first
// operand for the single-operand kinds.
type Predicate struct {
	Kind    string   `json:"kind"`
	Capture string   `json:"capture"`
	Value   string   `json:"value,omitempty"`
	Values  []string `json:"values,omitempty"`
	Pos     int      `json:"-"`
}

// Directive is a transformation clause (#kind!) parsed out of a query.
// Captures holds every @capture reference in source order, Params every
// string operand.
type Directive struct {
	Kind     string   `json:"kind"`
	Captures []string `json:"captures"`
	Params   []string `json:"params,omitempty"`
	Pos      int      `json:"-"`
}

// Transformation records one mutation a directive made to a capture's
// working state. Entries are only ever appended.
type Transformation struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Before      string `json:"before"`
	After       string `json:"after"`
}

// EnrichedCapture is a capture plus the mutable state directives operate on:
// a working text buffer seeded from the original text, and a metadata map.
type EnrichedCapture struct {
	Capture
	WorkingText string            `json:"workingText"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// EnrichedMatch is a structural match that survived predicate filtering,
// with per-capture working state attached.
type EnrichedMatch struct {
	Captures []EnrichedCapture `json:"captures"`
}

// Capture returns the first enriched capture with the given name.
func (m *EnrichedMatch) Capture(name string) (*EnrichedCapture, bool) {
	for i := range m.Captures {
		if m.Captures[i].Name == name {
			return &m.Captures[i], true
		}
	}
	return nil, false
}

// ProcessedMatch pairs an enriched match with its transformation log and the
// ordered set of directive kinds that touched it.
type ProcessedMatch struct {
	Match             EnrichedMatch    `json:"match"`
	Transformations   []Transformation `json:"transformations"`
	DirectivesApplied []string         `json:"directivesApplied"`
}

// Performance is the wall-clock accounting block attached to a successful
// evaluation.
type Performance struct {
	QueryTimeMs         float64 `json:"queryTimeMs"`
	TotalTimeMs         float64 `json:"totalTimeMs"`
	MatchCount          int     `json:"matchCount"`
	PredicatesProcessed int     `json:"predicatesProcessed"`
	DirectivesApplied   int     `json:"directivesApplied"`
}

// Result is the full outcome of evaluating one query against one set of
// structural matches. Errors is non-empty iff Success is false.
type Result struct {
	Success          bool             `json:"success"`
	Matches          []EnrichedMatch  `json:"matches"`
	ProcessedMatches []ProcessedMatch `json:"processedMatches,omitempty"`
	Errors           []string         `json:"errors"`
	Predicates       []Predicate      `json:"predicates,omitempty"`
	Directives       []Directive      `json:"directives,omitempty"`
	Performance      *Performance     `json:"performance,omitempty"`
}
