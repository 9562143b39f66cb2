package service

import (
	"context"

	"go_vocab_sets/internal/model"
	"go_vocab_sets/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeleteOutcome is the result of one step of a two-phase delete.
// Set (and Entry for entry deletes) describe the target so the confirmation
// view can be rendered.
type DeleteOutcome struct {
	Decision model.DeleteDecision
	Set      *model.VocabularySet
	Entry    *model.VocabEntry
}

// Deleted reports whether the target is gone.
func (o *DeleteOutcome) Deleted() bool {
	return o.Decision == model.DeleteConfirmed
}

// EntryQuery narrows the entries shown in a listing.
type EntryQuery struct {
	Query       string
	StarredOnly bool
}

func (q EntryQuery) starred() *bool {
	if !q.StarredOnly {
		return nil
	}
	starred := true
	return &starred
}

var errLoginRequired = model.NewAppError("UNAUTHORIZED", "Please sign in to continue.", "", model.ErrUnauthorized)

// loadOwnedSet resolves slug to a set owned by the requester.
// Sets of other users are reported as not found.
func loadOwnedSet(ctx context.Context, db *gorm.DB, sets repository.SetRepository, requester model.Requester, slug string) (*model.VocabularySet, error) {
	if !requester.Authenticated() {
		return nil, errLoginRequired
	}
	set, err := sets.FindBySlug(ctx, db, slug)
	if err != nil {
		return nil, err
	}
	if !set.IsOwnedBy(requester.UserID) {
		return nil, model.ErrNotFound
	}
	return set, nil
}

// loadEntry finds an entry that belongs to set.
func loadEntry(ctx context.Context, db *gorm.DB, entries repository.EntryRepository, set *model.VocabularySet, entryID uuid.UUID) (*model.VocabEntry, error) {
	entry, err := entries.FindByID(ctx, db, entryID)
	if err != nil {
		return nil, err
	}
	if entry.SetID != set.SetID {
		return nil, model.ErrNotFound
	}
	return entry, nil
}

// clipRunes shortens s to at most max runes.
func clipRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
