package domain

import (
	"time"

	"gorm.io/gorm"
)

// Language represents the language a meme term belongs to.
// Values include LanguageEnglish, LanguageChinese, and LanguageJapanese.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageChinese  Language = "zh"
	LanguageJapanese Language = "ja"
)

// Meme represents a catalogued internet meme or slang term.
// Term is the natural dedup key: reconciliation never creates a second
// live row with the same term. The unique index is partial so a
// soft-deleted row does not block re-creation of the term.
type Meme struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Language     Language       `gorm:"type:text;default:zh" json:"language"`
	Term         string         `gorm:"type:text;not null;uniqueIndex:idx_memes_term,where:deleted_at IS NULL" json:"term"`
	Explanation  string         `gorm:"type:text" json:"explanation"`
	ReferenceURL string         `gorm:"type:text" json:"referenceUrl,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// TableName returns the database table name for Meme.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Meme) TableName() string {
	return "memes"
}
