package handlers

import (
	"errors"
	"net/http"

	"go_vocab_sets/internal/middleware"
	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/service"
	"go_vocab_sets/internal/view"
	"go_vocab_sets/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type SetHandler struct {
	pages
	sets    service.SetService
	entries service.EntryService
}

func NewSetHandler(sets service.SetService, entries service.EntryService, views *view.Renderer) *SetHandler {
	return &SetHandler{pages: pages{views: views}, sets: sets, entries: entries}
}

// ShowSet はセットと単語一覧を表示します
func (h *SetHandler) ShowSet(w http.ResponseWriter, r *http.Request) {
	h.showSet(w, r, http.StatusOK, nil)
}

func (h *SetHandler) showSet(w http.ResponseWriter, r *http.Request, status int, flash *webutil.Flash) {
	slug := chi.URLParam(r, "slug")
	q, starredOnly := entryQuery(r)

	setView, err := h.sets.ShowSet(r.Context(), middleware.GetRequester(r.Context()), slug, service.EntryQuery{Query: q, StarredOnly: starredOnly})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page := h.page(w, r, setView.Set.Title, setView)
	if flash != nil {
		page.Flash = flash
	}
	if err := h.views.Render(w, status, view.PageSet, page); err != nil {
		middleware.GetLogger(r.Context()).Error("Failed to render page", "error", err, "page", view.PageSet)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// AddEntry は単語を追加します。入力エラーの場合はセット画面をエラー付きで再表示します
func (h *SetHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	slug := chi.URLParam(r, "slug")

	form, err := webutil.DecodeForm(w, r, "word")
	if err == nil {
		var entry *model.VocabEntry
		entry, err = h.entries.AddEntry(r.Context(), middleware.GetRequester(r.Context()), slug, form)
		if err == nil {
			logger.Info("Entry added via form", "entry_id", entry.EntryID.String())
			if entry.TranslationPending {
				webutil.SetFlash(w, "error", "Added \""+entry.Word+"\", but the translation is not available yet.")
			}
			redirect(w, r, setURL(slug))
			return
		}
	}

	if errors.Is(err, model.ErrInvalidInput) {
		logger.Info("Entry rejected", "error", err)
		h.showSet(w, r, http.StatusBadRequest, &webutil.Flash{Level: "error", Message: webutil.UserMessage(err)})
		return
	}
	h.fail(w, r, err)
}

// DeleteSet は確認画面を表示し、肯定の POST でセットを削除します
func (h *SetHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	decision := webutil.ParseDeleteDecision(r)
	middleware.GetLogger(r.Context()).Info("Delete set requested", "slug", slug, "decision", decision.String())

	outcome, err := h.sets.DeleteSet(r.Context(), middleware.GetRequester(r.Context()), slug, decision)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if outcome.Deleted() {
		webutil.SetFlash(w, "info", "Deleted \""+outcome.Set.Title+"\".")
		redirect(w, r, "/")
		return
	}

	h.render(w, r, http.StatusOK, view.PageConfirmDelete, "Delete set", view.ConfirmDelete{
		Heading:   "Delete \"" + outcome.Set.Title + "\"?",
		Message:   "The set and all of its words will be removed.",
		Action:    "/" + slug + "/delete",
		CancelURL: setURL(slug),
	})
}

// ExportPDF はセットを PDF で返します。?download=true で添付ファイルになります
func (h *SetHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	slug := chi.URLParam(r, "slug")

	result, err := h.sets.ExportSet(r.Context(), middleware.GetRequester(r.Context()), slug)
	if errors.Is(err, model.ErrRender) {
		logger.Error("PDF export failed", "error", err, "slug", slug)
		http.Error(w, "Could not generate the PDF document.", http.StatusInternalServerError)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	webutil.RespondWithPDF(w, result.Filename, result.Body, webutil.ParseBoolFlag(r.URL.Query().Get("download")))
}
