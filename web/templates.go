// Package web holds the server-rendered templates of the listings site.
package web

import (
	"embed"
	"html/template"
	"strings"

	"github.com/samber/lo"
)

//go:embed templates
var files embed.FS

// Templates parses every page, form and error template. Each file defines
// its template under its path below templates/, e.g. "pages/home.html".
func Templates() (*template.Template, error) {
	funcs := template.FuncMap{
		"join":     strings.Join,
		"contains": lo.Contains[string],
	}
	return template.New("").Funcs(funcs).ParseFS(files,
		"templates/layouts/*.html",
		"templates/pages/*.html",
		"templates/forms/*.html",
		"templates/errors/*.html",
	)
}
