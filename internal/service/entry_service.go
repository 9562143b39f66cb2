// internal/service/entry_service.go
package service

import (
	"context"
	"time"

	"go_vocab_sets/internal/middleware"
	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/phonetic"
	"go_vocab_sets/internal/repository"
	"go_vocab_sets/internal/translation"
	"go_vocab_sets/internal/webutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultTranslateTimeout = 5 * time.Second

type EntryService interface {
	AddEntry(ctx context.Context, requester model.Requester, slug string, raw map[string]string) (*model.VocabEntry, error)
	GetEntry(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID) (*model.VocabEntry, error)
	Star(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID) (*model.VocabEntry, error)
	Unstar(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID) (*model.VocabEntry, error)
	EditEntry(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID, raw map[string]string) (*model.VocabEntry, error)
	RetryTranslation(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID) (*model.VocabEntry, error)
	DeleteEntry(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID, decision model.DeleteDecision) (*DeleteOutcome, error)
}

type entryService struct {
	db         *gorm.DB
	sets       repository.SetRepository
	entries    repository.EntryRepository
	translator translation.Translator
	timeout    time.Duration
}

func NewEntryService(db *gorm.DB, sets repository.SetRepository, entries repository.EntryRepository, translator translation.Translator, timeout time.Duration) EntryService {
	if timeout <= 0 {
		timeout = defaultTranslateTimeout
	}
	return &entryService{
		db:         db,
		sets:       sets,
		entries:    entries,
		translator: translator,
		timeout:    timeout,
	}
}

func (s *entryService) AddEntry(ctx context.Context, requester model.Requester, slug string, raw map[string]string) (*model.VocabEntry, error) {
	logger := middleware.GetLogger(ctx)
	set, err := loadOwnedSet(ctx, s.db, s.sets, requester, slug)
	if err != nil {
		return nil, err
	}

	values, err := webutil.ValidateFields(webutil.EntryRules, raw)
	if err != nil {
		return nil, err
	}
	word := values["word"]

	translated, pending := s.translate(ctx, word)
	entry := &model.VocabEntry{
		EntryID:            uuid.New(),
		SetID:              set.SetID,
		AuthorID:           requester.UserID,
		Word:               word,
		Translation:        translated,
		Phonetic:           phonetic.Clip(phonetic.Romanize(word), model.PhoneticMaxLen),
		TranslationPending: pending,
	}
	if err := s.entries.Create(ctx, s.db, entry); err != nil {
		return nil, err
	}

	logger.Info("Vocab entry added",
		"entry_id", entry.EntryID.String(),
		"set_id", set.SetID.String(),
		"translation_pending", pending,
	)
	return entry, nil
}

// translate calls the adapter once. A failure yields an empty, pending translation.
func (s *entryService) translate(ctx context.Context, word string) (string, bool) {
	logger := middleware.GetLogger(ctx)
	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	translated, err := s.translator.Translate(tctx, word)
	if err != nil {
		logger.Warn("Translation failed, storing entry without translation", "error", err, "word", word)
		return "", true
	}
	translated = clipRunes(translated, model.TranslationMaxLen)
	if translated == "" {
		return "", true
	}
	return translated, false
}

func (s *entryService) GetEntry(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID) (*model.VocabEntry, error) {
	set, err := loadOwnedSet(ctx, s.db, s.sets, requester, slug)
	if err != nil {
		return nil, err
	}
	return loadEntry(ctx, s.db, s.entries, set, entryID)
}

func (s *entryService) Star(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID) (*model.VocabEntry, error) {
	return s.setStarred(ctx, requester, slug, entryID, true)
}

func (s *entryService) Unstar(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID) (*model.VocabEntry, error) {
	return s.setStarred(ctx, requester, slug, entryID, false)
}

func (s *entryService) setStarred(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID, starred bool) (*model.VocabEntry, error) {
	entry, err := s.GetEntry(ctx, requester, slug, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Starred == starred {
		return entry, nil
	}
	if err := s.entries.Update(ctx, s.db, entry.EntryID, map[string]interface{}{"starred": starred}); err != nil {
		return nil, err
	}
	entry.Starred = starred
	return entry, nil
}

func (s *entryService) EditEntry(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID, raw map[string]string) (*model.VocabEntry, error) {
	logger := middleware.GetLogger(ctx)
	entry, err := s.GetEntry(ctx, requester, slug, entryID)
	if err != nil {
		return nil, err
	}

	values, err := webutil.ValidateFields(webutil.EditRules, raw)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"translation":         values["translation"],
		"translation_pending": false,
	}
	if err := s.entries.Update(ctx, s.db, entry.EntryID, updates); err != nil {
		return nil, err
	}

	logger.Info("Vocab entry edited", "entry_id", entry.EntryID.String())
	return s.entries.FindByID(ctx, s.db, entry.EntryID)
}

func (s *entryService) RetryTranslation(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID) (*model.VocabEntry, error) {
	entry, err := s.GetEntry(ctx, requester, slug, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.TranslationPending {
		return entry, nil
	}

	translated, pending := s.translate(ctx, entry.Word)
	if pending {
		return entry, model.NewAppError("TRANSLATION_UNAVAILABLE",
			"The translation service is still unavailable. Please try again later.", "translation",
			model.ErrTranslationUnavailable)
	}

	updates := map[string]interface{}{"translation": translated, "translation_pending": false}
	if err := s.entries.Update(ctx, s.db, entry.EntryID, updates); err != nil {
		return nil, err
	}
	entry.Translation = translated
	entry.TranslationPending = false
	return entry, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, requester model.Requester, slug string, entryID uuid.UUID, decision model.DeleteDecision) (*DeleteOutcome, error) {
	logger := middleware.GetLogger(ctx)
	set, err := loadOwnedSet(ctx, s.db, s.sets, requester, slug)
	if err != nil {
		return nil, err
	}
	entry, err := loadEntry(ctx, s.db, s.entries, set, entryID)
	if err != nil {
		return nil, err
	}
	if decision != model.DeleteConfirmed {
		return &DeleteOutcome{Decision: model.DeletePending, Set: set, Entry: entry}, nil
	}

	if err := s.entries.Delete(ctx, s.db, entry.EntryID); err != nil {
		logger.Error("Failed to delete vocab entry", "error", err, "entry_id", entry.EntryID.String())
		return nil, err
	}

	logger.Info("Vocab entry deleted", "entry_id", entry.EntryID.String(), "set_id", set.SetID.String())
	return &DeleteOutcome{Decision: model.DeleteConfirmed, Set: set, Entry: entry}, nil
}
