package handlers

import (
	"context"
	"net/http"

	"go_vocab_sets/internal/middleware"
	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/service"
	"go_vocab_sets/internal/view"
	"go_vocab_sets/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type EntryHandler struct {
	pages
	entries service.EntryService
}

func NewEntryHandler(entries service.EntryService, views *view.Renderer) *EntryHandler {
	return &EntryHandler{pages: pages{views: views}, entries: entries}
}

type entryOp func(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID) (*model.VocabEntry, error)

// Star / Unstar は starred を設定してセット画面へ戻ります
func (h *EntryHandler) Star(w http.ResponseWriter, r *http.Request) {
	h.applyAndReturn(w, r, h.entries.Star)
}

func (h *EntryHandler) Unstar(w http.ResponseWriter, r *http.Request) {
	h.applyAndReturn(w, r, h.entries.Unstar)
}

// RetryTranslation は保留中の翻訳をもう一度取得します
func (h *EntryHandler) RetryTranslation(w http.ResponseWriter, r *http.Request) {
	h.applyAndReturn(w, r, h.entries.RetryTranslation)
}

func (h *EntryHandler) applyAndReturn(w http.ResponseWriter, r *http.Request, op entryOp) {
	slug := chi.URLParam(r, "slug")
	id, err := entryIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if _, err := op(r.Context(), middleware.GetRequester(r.Context()), slug, id); err != nil {
		h.formError(w, r, err, setURL(slug))
		return
	}
	redirect(w, r, setURL(slug))
}

// EditForm は翻訳の編集フォームを表示します
func (h *EntryHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	id, err := entryIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	requester := middleware.GetRequester(r.Context())
	entry, err := h.entries.GetEntry(r.Context(), requester, slug, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	set := &model.VocabularySet{SetID: entry.SetID, Slug: slug}
	h.render(w, r, http.StatusOK, view.PageEntryEdit, "Edit "+entry.Word, view.EntryForm{Set: set, Entry: entry})
}

// Edit は翻訳を更新します。入力エラーの場合は編集フォームへ戻ります
func (h *EntryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	slug := chi.URLParam(r, "slug")
	id, err := entryIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	back := entryURL(slug, id, "edit")

	form, err := webutil.DecodeForm(w, r, "translation")
	if err != nil {
		h.formError(w, r, err, back)
		return
	}
	entry, err := h.entries.EditEntry(r.Context(), middleware.GetRequester(r.Context()), slug, id, form)
	if err != nil {
		h.formError(w, r, err, back)
		return
	}

	logger.Info("Entry edited via form", "entry_id", entry.EntryID.String())
	webutil.SetFlash(w, "info", "Saved \""+entry.Word+"\".")
	redirect(w, r, setURL(slug))
}

// Delete は確認画面を表示し、肯定の POST で単語を削除します
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	id, err := entryIDParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	decision := webutil.ParseDeleteDecision(r)
	middleware.GetLogger(r.Context()).Info("Delete entry requested", "slug", slug, "entry_id", id.String(), "decision", decision.String())

	outcome, err := h.entries.DeleteEntry(r.Context(), middleware.GetRequester(r.Context()), slug, id, decision)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if outcome.Deleted() {
		webutil.SetFlash(w, "info", "Deleted \""+outcome.Entry.Word+"\".")
		redirect(w, r, setURL(slug))
		return
	}

	h.render(w, r, http.StatusOK, view.PageConfirmDelete, "Delete word", view.ConfirmDelete{
		Heading:   "Delete \"" + outcome.Entry.Word + "\"?",
		Message:   "The word will be removed from \"" + outcome.Set.Title + "\".",
		Action:    entryURL(slug, id, "delete"),
		CancelURL: setURL(slug),
	})
}
