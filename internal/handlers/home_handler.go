package handlers

import (
	"net/http"

	"go_vocab_sets/internal/middleware"
	"go_vocab_sets/internal/service"
	"go_vocab_sets/internal/view"
	"go_vocab_sets/internal/webutil"
)

type HomeHandler struct {
	pages
	sets service.SetService
}

func NewHomeHandler(sets service.SetService, views *view.Renderer) *HomeHandler {
	return &HomeHandler{pages: pages{views: views}, sets: sets}
}

// Home は一覧とフィルタを表示します
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	q, starredOnly := entryQuery(r)
	query := service.HomeQuery{
		SetQuery:   r.URL.Query().Get("set"),
		EntryQuery: service.EntryQuery{Query: q, StarredOnly: starredOnly},
	}

	home, err := h.sets.ListHome(r.Context(), middleware.GetRequester(r.Context()), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, view.PageHome, "", home)
}

// CreateSet は新しい単語セットを作成し、一覧へ戻ります
func (h *HomeHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	form, err := webutil.DecodeForm(w, r, "title")
	if err != nil {
		h.formError(w, r, err, "/")
		return
	}

	set, err := h.sets.CreateSet(r.Context(), middleware.GetRequester(r.Context()), form)
	if err != nil {
		h.formError(w, r, err, "/")
		return
	}

	logger.Info("Set created via form", "slug", set.Slug)
	webutil.SetFlash(w, "info", "Created \""+set.Title+"\".")
	redirect(w, r, "/")
}

func (h *HomeHandler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageAbout, "About", nil)
}
