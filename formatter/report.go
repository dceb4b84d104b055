package formatter

import (
	"strings"

	"github.com/treescope/treescope/internal/analysis"
)

// reportData is the template payload for one query's analysis report.
type reportData struct {
	Path        string
	Score       float64
	Tier        analysis.Tier
	Features    analysis.QueryFeatures
	Estimate    analysis.Estimate
	Suggestions []analysis.Suggestion
}

// AnalysisReportFormatter renders the complexity/performance report for a
// single query file.
type AnalysisReportFormatter struct{}

func (f *AnalysisReportFormatter) SectionTemplate() string {
	return `{{heading "analysis: "}}{{file .Path}}
  complexity: {{tier .Tier}} (score {{printf "%.1f" .Score}})
  estimated cost: {{printf "%.2f" .Estimate.EstimatedTimeMs}}ms, memory impact {{.Estimate.MemoryImpact}}
  clauses: {{.Features.PredicateCount}} predicate(s), {{.Features.DirectiveCount}} directive(s)
{{- range .Estimate.Recommendations}}
  {{warn "note: "}}{{dim .}}
{{- end}}
{{- range .Suggestions}}
  {{suggestion "suggestion: "}}{{kind .Type}} [{{.Impact}}]
    {{dim .Description}}
    {{- if .Example}}
    e.g. {{dim .Example}}
    {{- end}}
{{- end}}
`
}

// GenerateFormattedReport renders analysis reports for a batch of query
// files into one human-readable string.
func GenerateFormattedReport(path string, rep analysis.Report) string {
	data := reportData{
		Path:        path,
		Score:       rep.Score,
		Tier:        rep.Tier,
		Features:    rep.Features,
		Estimate:    rep.Estimate,
		Suggestions: rep.Suggestions,
	}
	return buildSection(data, &AnalysisReportFormatter{})
}

// StatisticsFormatter renders the aggregate over a query batch.
type StatisticsFormatter struct{}

func (f *StatisticsFormatter) SectionTemplate() string {
	return `{{heading "statistics"}}
  queries: {{.TotalQueries}} ({{.QueriesWithClauses}} with clauses, {{.MalformedQueries}} malformed)
  predicates: {{.TotalPredicates}}  directives: {{.TotalDirectives}}
  average complexity: {{printf "%.2f" .AverageComplexity}}
{{- range $kind, $n := .PredicateKinds}}
  {{kind $kind}}?: {{$n}}
{{- end}}
{{- range $kind, $n := .DirectiveKinds}}
  {{kind $kind}}!: {{$n}}
{{- end}}
`
}

func GenerateFormattedStatistics(st analysis.Statistics) string {
	var builder strings.Builder
	builder.WriteString(buildSection(st, &StatisticsFormatter{}))
	return builder.String()
}
