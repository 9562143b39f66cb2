// Package view renders the HTML pages of the application.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/webutil"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageHome          = "home"
	PageAbout         = "about"
	PageSet           = "set"
	PageEntryEdit     = "entry_edit"
	PageConfirmDelete = "confirm_delete"
	PageError         = "error"
)

var pageNames = []string{PageHome, PageAbout, PageSet, PageEntryEdit, PageConfirmDelete, PageError}

// Page is the data every template receives.
type Page struct {
	Title     string
	Requester model.Requester
	Flash     *webutil.Flash
	Content   any
}

// EntryForm is the content of the edit page.
type EntryForm struct {
	Set   *model.VocabularySet
	Entry *model.VocabEntry
}

// ConfirmDelete is the content of a delete confirmation page.
type ConfirmDelete struct {
	Heading   string
	Message   string
	Action    string
	CancelURL string
}

// ErrorContent is the content of the error page.
type ErrorContent struct {
	Status  int
	Message string
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date":       func(t time.Time) string { return t.Format("2006-01-02") },
	"statusText": http.StatusText,
}

// New parses the embedded templates. Each page is combined with the layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("view.New(%s): %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes the page into a buffer first so that a template error
// never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view.Render: unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("view.Render(%s): %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Error renders the error page for err with the status it maps to.
func (r *Renderer) Error(w http.ResponseWriter, req *http.Request, logger *slog.Logger, page Page, err error) {
	status := webutil.MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err, "status", status)
	} else {
		logger.Warn("Request rejected", "error", err, "status", status)
	}
	if webutil.WantsJSON(req) {
		webutil.RespondWithError(w, err)
		return
	}

	page.Title = http.StatusText(status)
	page.Content = ErrorContent{Status: status, Message: webutil.UserMessage(err)}
	if renderErr := r.Render(w, status, PageError, page); renderErr != nil {
		logger.Error("Failed to render error page", "error", renderErr)
		http.Error(w, webutil.UserMessage(err), status)
	}
}
