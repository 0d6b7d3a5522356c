package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":        FormatCurrency,
	"pct":         FormatPercentage,
	"kindClass":   kindClass,
	"yearly":      YearlySchedule,
	"assumptions": EntryAssumptions,
	"statusClass": func(status string) string { return strings.ReplaceAll(strings.ToLower(status), " ", "-") },
}).Parse(htmlTemplateSource))

func kindClass(kind domain.RecommendationKind) string {
	return "rec-" + string(kind)
}

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*Report
		Assumptions []string
	}{r, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
