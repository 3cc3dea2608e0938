/*
Package view renders the server-side HTML pages.

Every page template is parsed together with layout.html and defines a "content"
block. Templates are embedded into the binary.
*/
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"lancini/internal/app/model"
	"lancini/internal/pkg/logx"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page is the data handed to every template.
type Page struct {
	Title string

	// User is nil for anonymous visitors.
	User            *model.User
	IsAuthenticated bool
	AvatarURL       string

	// FormToken is the anti-forgery token for forms posted from this page.
	FormToken string

	// Active is the navigation entry to highlight.
	Active string

	Data any
}

// Renderer holds the parsed page templates. It is safe for concurrent use.
type Renderer struct {
	pages map[string]*template.Template
	now   func() time.Time
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template), now: time.Now}

	layout, err := template.New("layout.html").Funcs(r.funcs()).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if f == layoutFile {
			continue
		}

		t, err := template.Must(layout.Clone()).ParseFS(templateFS, f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f, err)
		}
		r.pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}

	return r, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.RelTime(t, r.now(), "ago", "from now")
		},
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"plural": func(n int, singular, plural string) string {
			return english.PluralWord(n, singular, plural)
		},
		"truncate": func(s string, n int) string {
			runes := []rune(s)
			if len(runes) <= n {
				return s
			}
			return string(runes[:n]) + "…"
		},
	}
}

// Render executes page into a buffer and writes it with status. A template failure
// produces a plain 500 instead of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page string, data Page) {
	t, ok := r.pages[page]
	if !ok {
		logx.Ctx(req.Context()).Error().Str("page", page).Msg("Unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logx.Ctx(req.Context()).Error().Err(err).Str("page", page).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Has reports whether page exists.
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}
