package formatter

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/fatih/color"

	"github.com/treescope/treescope/internal/analysis"
)

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	okStyle         = color.New(color.FgGreen, color.Bold)
	kindStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
	noStyle         = color.New(color.FgWhite)
)

// sectionFormatter is the interface report sections implement; each one
// contributes its own template.
type sectionFormatter interface {
	SectionTemplate() string
}

func buildSection(data any, formatter sectionFormatter) string {
	funcMap := template.FuncMap{
		"tier":       tierBadge,
		"heading":    heading,
		"file":       fileStyle.Sprint,
		"dim":        noStyle.Sprint,
		"kind":       kindStyle.Sprint,
		"suggestion": suggestionStyle.Sprint,
		"warn":       warningStyle.Sprint,
	}

	tmpl := template.Must(template.New("section").Funcs(funcMap).Parse(formatter.SectionTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting section: %v", err)
	}
	return buf.String()
}

// tierBadge renders a complexity tier in its conventional color: green for
// low, yellow for medium, red for high.
func tierBadge(t analysis.Tier) string {
	switch t {
	case analysis.TierLow:
		return okStyle.Sprint(string(t))
	case analysis.TierMedium:
		return warningStyle.Sprint(string(t))
	default:
		return errorStyle.Sprint(string(t))
	}
}

func heading(s string) string {
	return lineStyle.Sprintf("%s", s)
}
