package repository

import (
	"context"

	"github.com/timmy/memelens/internal/domain"
	"gorm.io/gorm"
)

// SubmissionRepository handles submission data operations.
type SubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *SubmissionRepository: repository instance bound to db.
func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a new submission together with its detected-meme relation
// rows. Attached memes must already be persisted; their columns are left
// untouched, only join rows are written.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - submission: submission record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	return r.db.WithContext(ctx).Omit("DetectedMemes.*").Create(submission).Error
}

// GetByID retrieves a submission by ID with its detected memes populated.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: submission ID.
// Returns:
//   - *domain.Submission: submission record if found.
//   - error: non-nil if lookup fails.
func (r *SubmissionRepository) GetByID(ctx context.Context, id uint) (*domain.Submission, error) {
	var submission domain.Submission
	if err := r.db.WithContext(ctx).Preload("DetectedMemes").First(&submission, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// List retrieves all non-soft-deleted submissions with detected memes populated.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Submission: submission records in store-default order.
//   - error: non-nil if the query fails.
func (r *SubmissionRepository) List(ctx context.Context) ([]domain.Submission, error) {
	var submissions []domain.Submission
	if err := r.db.WithContext(ctx).Preload("DetectedMemes").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// Delete soft-deletes a submission by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: submission ID to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *SubmissionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Submission{}, "id = ?", id).Error
}
