//go:generate mockery --name SetRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go_vocab_sets/internal/middleware"
	"go_vocab_sets/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type SetRepository interface {
	Create(ctx context.Context, db *gorm.DB, set *model.VocabularySet) error
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.VocabularySet, error)
	FindByOwner(ctx context.Context, db *gorm.DB, filter model.SetFilter) ([]*model.VocabularySet, error)
	CountByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) (int64, error)
	SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error)
	Delete(ctx context.Context, db *gorm.DB, setID uuid.UUID) error
}

type gormSetRepository struct{}

func NewGormSetRepository() SetRepository {
	return &gormSetRepository{}
}

func (r *gormSetRepository) Create(ctx context.Context, db *gorm.DB, set *model.VocabularySet) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Omit("Entries").Create(set)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			logger.Warn("Duplicate slug on create vocabulary set",
				"error", result.Error,
				"slug", set.Slug,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating vocabulary set in DB",
			"error", result.Error,
			"owner_id", set.OwnerID.String(),
			"title", set.Title,
		)
		return fmt.Errorf("gormSetRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormSetRepository) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.VocabularySet, error) {
	logger := middleware.GetLogger(ctx)
	var set model.VocabularySet

	result := db.WithContext(ctx).Where("slug = ?", slug).First(&set)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Debug("Vocabulary set not found by slug", "slug", slug)
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding vocabulary set by slug in DB",
			"error", result.Error,
			"slug", slug,
		)
		return nil, fmt.Errorf("gormSetRepository.FindBySlug: %w", result.Error)
	}
	return &set, nil
}

func (r *gormSetRepository) FindByOwner(ctx context.Context, db *gorm.DB, filter model.SetFilter) ([]*model.VocabularySet, error) {
	logger := middleware.GetLogger(ctx)
	var sets []*model.VocabularySet

	query := db.WithContext(ctx).Where("owner_id = ?", filter.OwnerID)
	if q := strings.TrimSpace(filter.TitleQuery); q != "" {
		query = query.Where("LOWER(title) LIKE ? ESCAPE '\\'", likePattern(q))
	}
	result := query.Order("created_at DESC").Find(&sets)
	if result.Error != nil {
		logger.Error("Error finding vocabulary sets by owner in DB",
			"error", result.Error,
			"owner_id", filter.OwnerID.String(),
		)
		return nil, fmt.Errorf("gormSetRepository.FindByOwner: %w", result.Error)
	}
	return sets, nil
}

func (r *gormSetRepository) CountByOwner(ctx context.Context, db *gorm.DB, ownerID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.VocabularySet{}).Where("owner_id = ?", ownerID).Count(&count)
	if result.Error != nil {
		logger.Error("Error counting vocabulary sets in DB",
			"error", result.Error,
			"owner_id", ownerID.String(),
		)
		return 0, fmt.Errorf("gormSetRepository.CountByOwner: %w", result.Error)
	}
	return count, nil
}

func (r *gormSetRepository) SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.VocabularySet{}).Where("slug = ?", slug).Count(&count)
	if result.Error != nil {
		logger.Error("Error checking slug existence in DB",
			"error", result.Error,
			"slug", slug,
		)
		return false, fmt.Errorf("gormSetRepository.SlugExists: %w", result.Error)
	}
	return count > 0, nil
}

func (r *gormSetRepository) Delete(ctx context.Context, db *gorm.DB, setID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Where("set_id = ?", setID).Delete(&model.VocabularySet{})
	if result.Error != nil {
		logger.Error("Error deleting vocabulary set in DB",
			"error", result.Error,
			"set_id", setID.String(),
		)
		return fmt.Errorf("gormSetRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// isUniqueViolation は一意制約違反かどうかを判定する (postgres / sqlite 両対応)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// likeEscaper escapes LIKE wildcards; queries must declare ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a lower-cased substring pattern matching q literally,
// so it behaves the same on postgres and sqlite.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}
