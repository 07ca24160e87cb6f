package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderReport renders a complete optimization report to markdown.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_statistics": "report_statistics.md",
		"report_portfolios": "report_portfolios.md",
		"report_frontier":   "report_frontier.md",
		"report_cloud":      "report_cloud.md",
		"report_plan":       "report_plan.md",
	}
	return renderTemplate("report", "report.md", partials, r)
}

// RenderStatistics renders the asset table and the correlation matrix.
func RenderStatistics(r *Report) string {
	return renderTemplate("report_statistics", "report_statistics.md", nil, r)
}

// RenderPortfolios renders the metrics and weights of the report portfolios.
func RenderPortfolios(r *Report) string {
	return renderTemplate("report_portfolios", "report_portfolios.md", nil, r)
}

// RenderFrontier renders the efficient frontier table.
func RenderFrontier(r *Report) string {
	return renderTemplate("report_frontier", "report_frontier.md", nil, r)
}

// RenderCloud renders the summary of the random portfolios.
func RenderCloud(r *Report) string {
	return renderTemplate("report_cloud", "report_cloud.md", nil, r)
}

// RenderPlan renders the rebalancing trades.
func RenderPlan(r *Report) string {
	return renderTemplate("report_plan", "report_plan.md", nil, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
