// internal/model/vocabulary_set.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// VocabularySet is a named collection of entries owned by one user.
type VocabularySet struct {
	SetID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"set_id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Slug      string    `gorm:"type:varchar(120);not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 関連 (削除時は entries も消える)
	Entries []VocabEntry `gorm:"foreignKey:SetID;references:SetID;constraint:OnDelete:CASCADE" json:"-"`
}

func (VocabularySet) TableName() string {
	return "vocabulary_sets"
}

// IsOwnedBy reports whether the set belongs to userID.
func (s *VocabularySet) IsOwnedBy(userID uuid.UUID) bool {
	return s != nil && userID != uuid.Nil && s.OwnerID == userID
}

// SetFilter narrows the sets listed on the home page.
type SetFilter struct {
	OwnerID    uuid.UUID
	TitleQuery string
}
