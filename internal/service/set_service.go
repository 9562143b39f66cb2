// internal/service/set_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go_vocab_sets/internal/export"
	"go_vocab_sets/internal/middleware"
	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/repository"
	"go_vocab_sets/internal/webutil"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	slugMaxBase      = 100
	slugFallback     = "set"
	maxSlugSuffix    = 1000
	maxCreateAttempt = 3
)

// トップレベルのルートと衝突するスラッグ
var reservedSlugs = map[string]struct{}{
	"about":  {},
	"health": {},
	"auth":   {},
	"logout": {},
}

type SetService interface {
	ListHome(ctx context.Context, requester model.Requester, q HomeQuery) (*HomeView, error)
	CreateSet(ctx context.Context, requester model.Requester, raw map[string]string) (*model.VocabularySet, error)
	ShowSet(ctx context.Context, requester model.Requester, slug string, q EntryQuery) (*SetView, error)
	DeleteSet(ctx context.Context, requester model.Requester, slug string, decision model.DeleteDecision) (*DeleteOutcome, error)
	ExportSet(ctx context.Context, requester model.Requester, slug string) (*ExportResult, error)
}

// HomeQuery holds the filters of the home page.
type HomeQuery struct {
	SetQuery string
	EntryQuery
}

// HomeView is what the home page shows. Anonymous visitors get the zero value.
type HomeView struct {
	Authenticated bool
	Sets          []*model.VocabularySet
	SetCount      int64
	Entries       []*model.VocabEntry
	SetSlugs      map[uuid.UUID]string
	Query         HomeQuery
}

// SetView is one set with its (filtered) entries.
type SetView struct {
	Set     *model.VocabularySet
	Entries []*model.VocabEntry
	Query   EntryQuery
}

// ExportResult is a rendered PDF ready to be sent.
type ExportResult struct {
	Filename string
	Body     []byte
}

type setService struct {
	db       *gorm.DB
	sets     repository.SetRepository
	entries  repository.EntryRepository
	renderer export.Renderer
	now      func() time.Time
}

func NewSetService(db *gorm.DB, sets repository.SetRepository, entries repository.EntryRepository, renderer export.Renderer) SetService {
	return &setService{
		db:       db,
		sets:     sets,
		entries:  entries,
		renderer: renderer,
		now:      time.Now,
	}
}

func (s *setService) ListHome(ctx context.Context, requester model.Requester, q HomeQuery) (*HomeView, error) {
	if !requester.Authenticated() {
		return &HomeView{}, nil
	}

	all, err := s.sets.FindByOwner(ctx, s.db, model.SetFilter{OwnerID: requester.UserID})
	if err != nil {
		return nil, err
	}
	view := &HomeView{
		Authenticated: true,
		Sets:          all,
		SetSlugs:      make(map[uuid.UUID]string, len(all)),
		Query:         q,
	}
	for _, set := range all {
		view.SetSlugs[set.SetID] = set.Slug
	}

	if strings.TrimSpace(q.SetQuery) != "" {
		view.Sets, err = s.sets.FindByOwner(ctx, s.db, model.SetFilter{OwnerID: requester.UserID, TitleQuery: q.SetQuery})
		if err != nil {
			return nil, err
		}
	}

	view.SetCount, err = s.sets.CountByOwner(ctx, s.db, requester.UserID)
	if err != nil {
		return nil, err
	}

	view.Entries, err = s.entries.Find(ctx, s.db, model.EntryFilter{
		OwnerID: requester.UserID,
		Starred: q.starred(),
		Query:   q.Query,
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *setService) CreateSet(ctx context.Context, requester model.Requester, raw map[string]string) (*model.VocabularySet, error) {
	logger := middleware.GetLogger(ctx)
	if !requester.Authenticated() {
		return nil, errLoginRequired
	}

	values, err := webutil.ValidateFields(webutil.SetRules, raw)
	if err != nil {
		return nil, err
	}
	title := values["title"]
	base := baseSlug(title)

	// 同時作成でスラッグが衝突した場合は次の候補でやり直す
	for attempt := 1; attempt <= maxCreateAttempt; attempt++ {
		candidate, err := s.uniqueSlug(ctx, base)
		if err != nil {
			return nil, err
		}
		set := &model.VocabularySet{
			SetID:   uuid.New(),
			OwnerID: requester.UserID,
			Title:   title,
			Slug:    candidate,
		}
		err = s.sets.Create(ctx, s.db, set)
		if err == nil {
			logger.Info("Vocabulary set created", "set_id", set.SetID.String(), "slug", set.Slug)
			return set, nil
		}
		if !errors.Is(err, model.ErrConflict) {
			return nil, err
		}
		logger.Warn("Slug taken concurrently, retrying", "slug", candidate, "attempt", attempt)
	}
	return nil, model.NewAppError("SLUG_CONFLICT", "Could not allocate a unique address for this set. Please try again.", "title", model.ErrConflict)
}

// baseSlug derives the URL slug of a title. CJK titles are transliterated.
func baseSlug(title string) string {
	s := slug.Make(title)
	if len(s) > slugMaxBase {
		s = strings.TrimRight(s[:slugMaxBase], "-")
	}
	if s == "" {
		return slugFallback
	}
	return s
}

// uniqueSlug returns base, or base-2, base-3, ... whichever is free and not reserved.
func (s *setService) uniqueSlug(ctx context.Context, base string) (string, error) {
	for n := 1; n <= maxSlugSuffix; n++ {
		candidate := base
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		if _, reserved := reservedSlugs[candidate]; reserved {
			continue
		}
		exists, err := s.sets.SlugExists(ctx, s.db, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("setService.uniqueSlug(%s): %w", base, model.ErrConflict)
}

func (s *setService) ShowSet(ctx context.Context, requester model.Requester, slug string, q EntryQuery) (*SetView, error) {
	set, err := loadOwnedSet(ctx, s.db, s.sets, requester, slug)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.Find(ctx, s.db, model.EntryFilter{
		SetID:   set.SetID,
		Starred: q.starred(),
		Query:   q.Query,
	})
	if err != nil {
		return nil, err
	}
	return &SetView{Set: set, Entries: entries, Query: q}, nil
}

func (s *setService) DeleteSet(ctx context.Context, requester model.Requester, slug string, decision model.DeleteDecision) (*DeleteOutcome, error) {
	logger := middleware.GetLogger(ctx)
	set, err := loadOwnedSet(ctx, s.db, s.sets, requester, slug)
	if err != nil {
		return nil, err
	}
	if decision != model.DeleteConfirmed {
		return &DeleteOutcome{Decision: model.DeletePending, Set: set}, nil
	}

	var removed int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		removed, err = s.entries.DeleteBySet(ctx, tx, set.SetID)
		if err != nil {
			return err
		}
		return s.sets.Delete(ctx, tx, set.SetID)
	})
	if err != nil {
		logger.Error("Transaction failed for DeleteSet", "error", err, "set_id", set.SetID.String())
		return nil, err
	}

	logger.Info("Vocabulary set deleted", "set_id", set.SetID.String(), "entries_removed", removed)
	return &DeleteOutcome{Decision: model.DeleteConfirmed, Set: set}, nil
}

func (s *setService) ExportSet(ctx context.Context, requester model.Requester, slug string) (*ExportResult, error) {
	logger := middleware.GetLogger(ctx)
	set, err := loadOwnedSet(ctx, s.db, s.sets, requester, slug)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.Find(ctx, s.db, model.EntryFilter{SetID: set.SetID})
	if err != nil {
		return nil, err
	}

	doc := export.Document{
		Set:         *set,
		Entries:     make([]model.VocabEntry, 0, len(entries)),
		Owner:       requester.Name,
		GeneratedAt: s.now(),
	}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, *e)
	}

	body, err := s.renderer.RenderSet(doc)
	if err != nil {
		logger.Error("Failed to render PDF", "error", err, "set_id", set.SetID.String())
		return nil, err
	}
	logger.Info("Vocabulary set exported", slog.String("set_id", set.SetID.String()), slog.Int("entries", len(entries)), slog.Int("bytes", len(body)))
	return &ExportResult{Filename: export.Filename(set.Title), Body: body}, nil
}
