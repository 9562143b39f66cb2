// internal/model/vocab_entry.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Stored column widths.
const (
	WordMaxLen        = 10
	TranslationMaxLen = 50
	PhoneticMaxLen    = 30
	TitleMaxLen       = 100
)

// VocabEntry is a single word with its translation and pinyin.
type VocabEntry struct {
	EntryID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"entry_id"`
	SetID              uuid.UUID `gorm:"type:uuid;not null;index" json:"set_id"`
	AuthorID           uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Word               string    `gorm:"type:varchar(10);not null" json:"word"`
	Translation        string    `gorm:"type:varchar(50);not null;default:''" json:"translation"`
	Phonetic           string    `gorm:"type:varchar(30);not null;default:''" json:"phonetic"`
	Starred            bool      `gorm:"not null;default:false" json:"starred"`
	TranslationPending bool      `gorm:"not null;default:false" json:"translation_pending"` // 翻訳APIが失敗した場合 true
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (VocabEntry) TableName() string {
	return "vocab_entries"
}

// EntryFilter narrows entry listings. Zero values mean "no constraint".
type EntryFilter struct {
	SetID   uuid.UUID
	OwnerID uuid.UUID
	Starred *bool
	Query   string
}
