// Package web embeds the HTML templates and page copy served by the UI.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"carbonfront/internal/domain"
)

//go:embed templates/*.html content/*.md
var files embed.FS

// Templates parses every page template with the shared helper functions.
func Templates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"fileSize": domain.FormatFileSize,
	}
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return tmpl, nil
}

// Markdown renders an embedded markdown document to HTML.
func Markdown(name string) (template.HTML, error) {
	src, err := files.ReadFile("content/" + name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})

	return template.HTML(markdown.ToHTML(src, p, renderer)), nil //nolint:gosec // embedded content
}
