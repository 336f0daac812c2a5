package repository

import (
	"context"
	"errors"

	"github.com/timmy/memelens/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemeRepository handles meme data operations.
type MemeRepository struct {
	db *gorm.DB
}

// NewMemeRepository creates a new MemeRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MemeRepository: repository instance bound to db.
func NewMemeRepository(db *gorm.DB) *MemeRepository {
	return &MemeRepository{db: db}
}

// Create inserts a new meme record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - meme: meme record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *MemeRepository) Create(ctx context.Context, meme *domain.Meme) error {
	return r.db.WithContext(ctx).Create(meme).Error
}

// GetByID retrieves a meme by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: meme ID.
// Returns:
//   - *domain.Meme: meme record if found.
//   - error: non-nil if lookup fails.
func (r *MemeRepository) GetByID(ctx context.Context, id uint) (*domain.Meme, error) {
	var meme domain.Meme
	if err := r.db.WithContext(ctx).First(&meme, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &meme, nil
}

// FindByTerm retrieves a meme by exact, case-sensitive term match.
// Soft-deleted rows are excluded by the GORM default scope.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - term: term string to match.
// Returns:
//   - *domain.Meme: meme record if found.
//   - error: gorm.ErrRecordNotFound if absent, other errors on failure.
func (r *MemeRepository) FindByTerm(ctx context.Context, term string) (*domain.Meme, error) {
	var meme domain.Meme
	if err := r.db.WithContext(ctx).First(&meme, "term = ?", term).Error; err != nil {
		return nil, err
	}
	return &meme, nil
}

// FindOrCreate returns the live meme with the candidate's term, creating it
// when absent. An existing row is returned untouched even when the candidate
// carries a different explanation. The insert is an insert-if-absent against
// the partial unique index on term, so two racing callers converge on one row.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - candidate: meme to create when no live row matches its term.
// Returns:
//   - *domain.Meme: existing or newly created meme record.
//   - error: non-nil if a read or the insert fails.
func (r *MemeRepository) FindOrCreate(ctx context.Context, candidate *domain.Meme) (*domain.Meme, error) {
	var existing domain.Meme
	err := r.db.WithContext(ctx).First(&existing, "term = ?", candidate.Term).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "term"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "deleted_at IS NULL"}}},
		DoNothing:   true,
	}).Create(candidate)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return candidate, nil
	}

	// Lost the insert race: another writer created the term between the
	// read and the insert. Re-read the winning row.
	if err := r.db.WithContext(ctx).First(&existing, "term = ?", candidate.Term).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// List retrieves all non-soft-deleted memes.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Meme: meme records in store-default order.
//   - error: non-nil if the query fails.
func (r *MemeRepository) List(ctx context.Context) ([]domain.Meme, error) {
	var memes []domain.Meme
	if err := r.db.WithContext(ctx).Find(&memes).Error; err != nil {
		return nil, err
	}
	return memes, nil
}

// Delete soft-deletes a meme by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: meme ID to delete.
// Returns:
//   - error: non-nil if the delete fails.
func (r *MemeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Meme{}, "id = ?", id).Error
}
