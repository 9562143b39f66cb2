//go:generate mockery --name EntryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go_vocab_sets/internal/middleware"
	"go_vocab_sets/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryRepository interface {
	Create(ctx context.Context, db *gorm.DB, entry *model.VocabEntry) error
	FindByID(ctx context.Context, db *gorm.DB, entryID uuid.UUID) (*model.VocabEntry, error)
	Find(ctx context.Context, db *gorm.DB, filter model.EntryFilter) ([]*model.VocabEntry, error)
	Update(ctx context.Context, db *gorm.DB, entryID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, db *gorm.DB, entryID uuid.UUID) error
	DeleteBySet(ctx context.Context, db *gorm.DB, setID uuid.UUID) (int64, error)
}

type gormEntryRepository struct{}

func NewGormEntryRepository() EntryRepository {
	return &gormEntryRepository{}
}

func (r *gormEntryRepository) Create(ctx context.Context, db *gorm.DB, entry *model.VocabEntry) error {
	logger := middleware.GetLogger(ctx)
	// Select("*") で false / 空文字もそのまま INSERT する
	result := db.WithContext(ctx).Select("*").Create(entry)
	if result.Error != nil {
		logger.Error("Error creating vocab entry in DB",
			"error", result.Error,
			"set_id", entry.SetID.String(),
			"word", entry.Word,
		)
		return fmt.Errorf("gormEntryRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormEntryRepository) FindByID(ctx context.Context, db *gorm.DB, entryID uuid.UUID) (*model.VocabEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entry model.VocabEntry
	result := db.WithContext(ctx).Where("entry_id = ?", entryID).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding vocab entry by ID in DB",
			"error", result.Error,
			"entry_id", entryID.String(),
		)
		return nil, fmt.Errorf("gormEntryRepository.FindByID: %w", result.Error)
	}
	return &entry, nil
}

func (r *gormEntryRepository) Find(ctx context.Context, db *gorm.DB, filter model.EntryFilter) ([]*model.VocabEntry, error) {
	logger := middleware.GetLogger(ctx)
	var entries []*model.VocabEntry

	query := db.WithContext(ctx).Model(&model.VocabEntry{})
	if filter.SetID != uuid.Nil {
		query = query.Where("set_id = ?", filter.SetID)
	}
	if filter.OwnerID != uuid.Nil {
		query = query.Where("set_id IN (?)",
			db.Model(&model.VocabularySet{}).Select("set_id").Where("owner_id = ?", filter.OwnerID))
	}
	if filter.Starred != nil {
		query = query.Where("starred = ?", *filter.Starred)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := likePattern(q)
		query = query.Where("(LOWER(word) LIKE ? ESCAPE '\\' OR LOWER(translation) LIKE ? ESCAPE '\\')", pattern, pattern)
	}

	result := query.Order("created_at ASC").Find(&entries)
	if result.Error != nil {
		logger.Error("Error finding vocab entries in DB",
			"error", result.Error,
			"set_id", filter.SetID.String(),
			"owner_id", filter.OwnerID.String(),
		)
		return nil, fmt.Errorf("gormEntryRepository.Find: %w", result.Error)
	}
	return entries, nil
}

func (r *gormEntryRepository) Update(ctx context.Context, db *gorm.DB, entryID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&model.VocabEntry{}).Where("entry_id = ?", entryID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating vocab entry in DB",
			"error", result.Error,
			"entry_id", entryID.String(),
		)
		return fmt.Errorf("gormEntryRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormEntryRepository) Delete(ctx context.Context, db *gorm.DB, entryID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("entry_id = ?", entryID).Delete(&model.VocabEntry{})
	if result.Error != nil {
		logger.Error("Error deleting vocab entry in DB",
			"error", result.Error,
			"entry_id", entryID.String(),
		)
		return fmt.Errorf("gormEntryRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormEntryRepository) DeleteBySet(ctx context.Context, db *gorm.DB, setID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("set_id = ?", setID).Delete(&model.VocabEntry{})
	if result.Error != nil {
		logger.Error("Error deleting vocab entries of set in DB",
			"error", result.Error,
			"set_id", setID.String(),
		)
		return 0, fmt.Errorf("gormEntryRepository.DeleteBySet: %w", result.Error)
	}
	return result.RowsAffected, nil
}
