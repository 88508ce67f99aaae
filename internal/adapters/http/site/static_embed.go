package site

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed static/**
var staticFS embed.FS

//go:embed templates/*.html
var templateFS embed.FS

// FS returns an http.FileSystem for the embedded stylesheet.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}

// pageTemplate is parsed once; a broken template fails at init rather than
// on the first request.
var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"pct": formatPercent,
}).ParseFS(templateFS, "templates/index.html"))
