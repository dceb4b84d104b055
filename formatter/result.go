package formatter

import (
	"fmt"
	"sort"
	"strings"

	tt "github.com/treescope/treescope/internal/types"
)

// FormatResult renders an evaluation result for the terminal: the surviving
// matches with their enriched capture state, or the error list when the
// query failed.
func FormatResult(res *tt.Result) string {
	var builder strings.Builder

	if !res.Success {
		for _, msg := range res.Errors {
			builder.WriteString(errorStyle.Sprint("error: "))
			builder.WriteString(messageStyle.Sprint(msg))
			builder.WriteString("\n")
		}
		return builder.String()
	}

	builder.WriteString(okStyle.Sprintf("ok: "))
	builder.WriteString(fmt.Sprintf("%d match(es)", len(res.Matches)))
	if res.Performance != nil {
		builder.WriteString(noStyle.Sprintf(" in %.2fms (%d predicate(s), %d directive(s))",
			res.Performance.TotalTimeMs,
			res.Performance.PredicatesProcessed,
			res.Performance.DirectivesApplied))
	}
	builder.WriteString("\n")

	for i, pm := range res.ProcessedMatches {
		builder.WriteString(lineStyle.Sprintf("match %d\n", i+1))
		for _, c := range pm.Match.Captures {
			builder.WriteString(formatCapture(c))
		}
		for _, t := range pm.Transformations {
			builder.WriteString(noStyle.Sprintf("  ~ %s: %s\n", t.Kind, t.Description))
			if t.Before != t.After {
				builder.WriteString(noStyle.Sprintf("    %q -> %q\n", t.Before, t.After))
			}
		}
	}
	return builder.String()
}

func formatCapture(c tt.EnrichedCapture) string {
	var builder strings.Builder
	builder.WriteString("  ")
	builder.WriteString(kindStyle.Sprintf("@%s", c.Name))
	builder.WriteString(noStyle.Sprintf(" (%s) ", c.Kind))
	builder.WriteString(fileStyle.Sprintf("%d:%d", c.Start.Row, c.Start.Column))
	builder.WriteString(noStyle.Sprintf(" %q", c.Text))
	if c.WorkingText != c.Text {
		builder.WriteString(suggestionStyle.Sprintf(" => %q", c.WorkingText))
	}
	builder.WriteString("\n")

	for _, key := range sortedKeys(c.Metadata) {
		builder.WriteString(noStyle.Sprintf("    %s = %s\n", key, c.Metadata[key]))
	}
	return builder.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
