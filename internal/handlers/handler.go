package handlers

import (
	"errors"
	"net/http"

	"go_vocab_sets/internal/middleware"
	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/view"
	"go_vocab_sets/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// pages holds what every HTML handler needs to respond.
type pages struct {
	views *view.Renderer
}

func (p pages) page(w http.ResponseWriter, r *http.Request, title string, content any) view.Page {
	return view.Page{
		Title:     title,
		Requester: middleware.GetRequester(r.Context()),
		Flash:     webutil.PopFlash(w, r),
		Content:   content,
	}
}

func (p pages) render(w http.ResponseWriter, r *http.Request, status int, name, title string, content any) {
	if err := p.views.Render(w, status, name, p.page(w, r, title, content)); err != nil {
		middleware.GetLogger(r.Context()).Error("Failed to render page", "error", err, "page", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// fail renders the error page for err.
func (p pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	p.views.Error(w, r, middleware.GetLogger(r.Context()), p.page(w, r, "", nil), err)
}

// formError sends recoverable form errors back to target as a flash message.
// Everything else becomes the error page.
func (p pages) formError(w http.ResponseWriter, r *http.Request, err error, target string) {
	if errors.Is(err, model.ErrInvalidInput) || errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrTranslationUnavailable) {
		middleware.GetLogger(r.Context()).Info("Form rejected", "error", err)
		webutil.SetFlash(w, "error", webutil.UserMessage(err))
		redirect(w, r, target)
		return
	}
	p.fail(w, r, err)
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func setURL(slug string) string {
	return "/" + slug + "/"
}

func entryURL(slug string, entryID uuid.UUID, action string) string {
	return "/" + slug + "/" + entryID.String() + "/" + action
}

// entryIDParam parses {id}. A malformed id is reported as not found.
func entryIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, model.ErrNotFound
	}
	return id, nil
}

func entryQuery(r *http.Request) (q string, starredOnly bool) {
	values := r.URL.Query()
	return values.Get("q"), webutil.ParseBoolFlag(values.Get("starred"))
}
