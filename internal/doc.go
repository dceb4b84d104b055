// Package internal provides the core engine for post-processing structural
// pattern-match results.
//
// The engine takes two inputs, the raw query text and the match set the
// upstream structural matcher produced for it, and runs a fixed pipeline:
//
// Clause extraction: the trailing #kind?/#kind! annotation clauses embedded
// in the query text are parsed into ordered predicate and directive lists
// (package clause).
//
// Predicate filtering: every match must satisfy the conjunction of all
// predicates targeting its captures; the rest are dropped (package
// predicate).
//
// Directive application: surviving matches are enriched with per-capture
// working text and metadata, transformed by the directives in source order,
// and annotated with a transformation log (package directive).
//
// Analysis: independently of evaluation, the same clause lists feed a
// complexity and performance analyzer that scores the query, estimates its
// cost, and suggests optimizations (package analysis).
//
// Evaluation is fail-fast and query-wide: one malformed clause anywhere in
// the text fails the whole query with no partial results. The analyzer is
// the deliberate exception and degrades gracefully on malformed input.
//
// Usage:
//
//	engine := internal.NewDefaultEngine()
//	result := engine.Evaluate(queryText, matches)
//	report := engine.Analyze(queryText)
package internal
