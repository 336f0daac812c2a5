package service

import (
	"context"
	"errors"

	"github.com/timmy/memelens/internal/domain"
	"github.com/timmy/memelens/internal/repository"
)

// ErrTermRequired is returned when a meme is created without a term.
var ErrTermRequired = errors.New("meme term is required")

// MemeService exposes the meme catalog read/write operations.
type MemeService struct {
	memeRepo *repository.MemeRepository
}

// NewMemeService creates a new meme service.
// Parameters:
//   - memeRepo: meme repository.
// Returns:
//   - *MemeService: initialized service.
func NewMemeService(memeRepo *repository.MemeRepository) *MemeService {
	return &MemeService{memeRepo: memeRepo}
}

// CreateMemeInput is the request payload for direct meme creation.
type CreateMemeInput struct {
	Language     domain.Language `json:"language"`
	Term         string          `json:"term"`
	Explanation  string          `json:"explanation"`
	ReferenceURL string          `json:"referenceUrl"`
}

// Create persists a new meme from the given fields. Language defaults to
// Chinese when unset.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - input: meme fields.
// Returns:
//   - *domain.Meme: created meme record.
//   - error: ErrTermRequired for an empty term, store errors otherwise.
func (s *MemeService) Create(ctx context.Context, input *CreateMemeInput) (*domain.Meme, error) {
	if input.Term == "" {
		return nil, ErrTermRequired
	}

	language := input.Language
	if language == "" {
		language = domain.LanguageChinese
	}

	meme := &domain.Meme{
		Language:     language,
		Term:         input.Term,
		Explanation:  input.Explanation,
		ReferenceURL: input.ReferenceURL,
	}
	if err := s.memeRepo.Create(ctx, meme); err != nil {
		return nil, err
	}
	return meme, nil
}

// List retrieves all non-soft-deleted memes.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Meme: memes in store-default order.
//   - error: non-nil if the query fails.
func (s *MemeService) List(ctx context.Context) ([]domain.Meme, error) {
	return s.memeRepo.List(ctx)
}

// Get retrieves a single meme by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: meme ID.
// Returns:
//   - *domain.Meme: meme record.
//   - error: non-nil if lookup fails.
func (s *MemeService) Get(ctx context.Context, id uint) (*domain.Meme, error) {
	return s.memeRepo.GetByID(ctx, id)
}
