// Package views renders the server-side HTML pages. Templates are
// embedded in the binary; a directory may be supplied instead during
// development, in which case edits are picked up without a restart.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"bugtracker/backend/app/models"
	"bugtracker/backend/app/session"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.html
var embedded embed.FS

const layoutFile = "layout.html"

type Flash struct {
	Kind    string
	Message string
}

// Page is the data handed to every template.
type Page struct {
	Title   string
	Session *session.Context
	Flash   *Flash
	Data    any
}

type Renderer struct {
	mu    sync.RWMutex
	fsys  fs.FS
	pages map[string]*template.Template
	md    goldmark.Markdown
}

// New loads templates from dir, or from the embedded set when dir is empty.
func New(dir string) (*Renderer, error) {
	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}
	r := &Renderer{fsys: fsys, md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload parses every page template again. On failure the previous set
// stays in place.
func (r *Renderer) Reload() error {
	names, err := fs.Glob(r.fsys, "*.html")
	if err != nil {
		return err
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutFile {
			continue
		}
		t, err := template.New(layoutFile).Funcs(r.funcs()).ParseFS(r.fsys, layoutFile, name)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, path.Ext(name))] = t
	}
	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"markdown":   r.Markdown,
		"date":       func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		"severities": func() []models.Severity { return models.Severities },
		"statuses":   func() []models.Status { return models.Statuses },
		"lower":      strings.ToLower,
	}
}

// Markdown converts src to HTML. Raw HTML in src is escaped.
func (r *Renderer) Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// Render writes page to w with status. Nothing is written when the
// template fails to execute.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Page) error {
	r.mu.RLock()
	t, ok := r.pages[page]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutFile, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
