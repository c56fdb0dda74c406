package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

//go:embed web
var webFS embed.FS

// StaticFS returns embedded static assets rooted at static directory
func StaticFS() fs.FS {
	return echo.MustSubFS(webFS, "web/static")
}

// TemplateRenderer renders embedded html templates
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses every embedded template
func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.ParseFS(webFS, "web/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates - %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
