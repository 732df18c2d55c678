// Package views renders the HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"tirthyatra/models"
)

//go:embed templates/*.html
var files embed.FS

// Page files under templates/, each rendered inside layout.html.
const (
	List      = "list.html"
	Detail    = "detail.html"
	NotFound  = "notfound.html"
	Submit    = "submit.html"
	Submitted = "submitted.html"
)

var pages = map[string]*template.Template{}

var funcs = template.FuncMap{
	"facilityIcon": FacilityIcon,
	"inc":          func(i int) int { return i + 1 },
	"join":         strings.Join,
	"stopTypes":    func() []string { return models.StopTypes },
	"facilities":   func() []string { return models.Facilities },
	"contains": func(set []string, v string) bool {
		for _, s := range set {
			if s == v {
				return true
			}
		}
		return false
	},
	// A mailto: URL is safe to emit as-is; html/template would otherwise
	// rewrite it to #ZgotmplZ.
	"mailto": func(s string) template.URL {
		if !strings.HasPrefix(s, "mailto:") {
			return ""
		}
		return template.URL(s)
	},
	"fmt": fmt.Sprintf,
}

func init() {
	for _, page := range []string{List, Detail, NotFound, Submit, Submitted} {
		pages[page] = template.Must(template.New("layout.html").Funcs(funcs).
			ParseFS(files, "templates/layout.html", "templates/"+page))
	}
}

// FacilityIcon maps a facility tag to its badge icon.
func FacilityIcon(facility string) string {
	if facility == models.FacilityBhojanshala {
		return "🍽️"
	}
	return "🏨"
}

// Layout is the data every page receives; Data is page specific.
type Layout struct {
	Title string
	Year  int
	Data  any
}

// Render executes page into a buffer first so a template error never leaves a
// half-written response.
func Render(w http.ResponseWriter, status int, page, title string, data any) {
	t, ok := pages[page]
	if !ok {
		http.Error(w, "Unknown page", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	err := t.Execute(&buf, Layout{Title: title, Year: time.Now().Year(), Data: data})
	if err != nil {
		log.Printf("[views] render %s: %v", page, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
