/*
Package clause extracts predicate and directive clauses from query text.

Structural pattern queries carry trailing annotation clauses that refine what
the raw pattern matched:

	(identifier) @name
	(#eq? @name "request")
	(#set! @name "category" "variable")

The extractor recognizes exactly two lexical shapes:

 1. Predicate: #<kind>? @<capture> <params...>
    A boolean filter evaluated per match, e.g. #eq?, #match?, #any-of?.

 2. Directive: #<kind>! @<capture> <params...>
    A transformation applied to surviving matches, e.g. #set!, #strip!.

Parameters are double-quoted strings ("literal"), bracketed string lists
(["a", "b", "c"]), or additional @capture references. Everything that is not
clause syntax (node patterns, wildcards, quantifiers) is opaque text owned
by the upstream matcher and skipped without interpretation.

Extraction is total over clause kinds: #frobnicate? parses fine here and is
rejected by the stage that understands kinds. Source order of clauses is
preserved, which the applicator relies on for left-to-right composition.
*/
package clause
