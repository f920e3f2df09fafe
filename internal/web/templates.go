package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"diet-planner/internal/spoonacular"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"form",
	"plan",
	"recipe",
	"not_found",
	"error",
}

var funcMap = template.FuncMap{
	"formatFloat": func(value float64) string {
		return fmt.Sprintf("%.1f", value)
	},
	"formatInt": func(value float64) string {
		return strconv.FormatFloat(math.Round(value), 'f', 0, 64)
	},
	"yesNo": func(v bool) string {
		if v {
			return "Yes"
		}
		return "No"
	},
	"inc":   func(i int) int { return i + 1 },
	"names": spoonacular.Names,
}

func parsePageTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(templateFS,
			"templates/base.html",
			"templates/partials.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", page, err)
		}
		templates[page] = parsed
	}
	return templates, nil
}

// render writes page with the given status. Output is buffered; a template
// error produces a plain 500 instead.
func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := s.templates[page]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		s.logger.Error("failed to render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
