package domain

import (
	"time"

	"gorm.io/gorm"
)

// Submission represents a user-submitted piece of content together with
// the memes detected in it. Exactly one of TextContent, ImageURL, and
// VideoURL is expected per submission; the store does not enforce
// exclusivity, orchestration inspects them in fixed precedence order.
type Submission struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	TextContent   string         `gorm:"type:text" json:"textContent,omitempty"`
	ImageURL      string         `gorm:"type:text" json:"imageUrl,omitempty"`
	VideoURL      string         `gorm:"type:text" json:"videoUrl,omitempty"`
	DetectedMemes []Meme         `gorm:"many2many:submission_memes" json:"detectedMemes"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// TableName returns the database table name for Submission.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Submission) TableName() string {
	return "submissions"
}
