// Package renderer renders portfolio reports as markdown.
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

// RenderHolding renders the holdings table followed by the totals.
func RenderHolding(h *Holding) string {
	partials := map[string]string{
		"holding_title":  "holding_title.md",
		"holding_table":  "holding_table.md",
		"holding_totals": "holding_totals.md",
	}
	return renderTemplate("holding", "holding.md", partials, h)
}

// RenderTotals renders only the number of holdings and the total value.
func RenderTotals(h *Holding) string {
	return renderTemplate("holding_totals", "holding_totals.md", nil, h)
}

// RenderPrices renders the price catalog.
func RenderPrices(p *Prices) string {
	return renderTemplate("prices", "prices.md", nil, p)
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
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
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
