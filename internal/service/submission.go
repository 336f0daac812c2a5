package service

import (
	"context"

	"github.com/timmy/memelens/internal/domain"
	"github.com/timmy/memelens/internal/logger"
	"github.com/timmy/memelens/internal/repository"
)

// DefaultFallbackDetections is attached to a submission when the analyzer
// fails at the orchestrator boundary. Two well-known example terms; tests
// and deployments may inject their own list through SubmissionConfig.
var DefaultFallbackDetections = []Detection{
	{
		Term:         "look at my eyes",
		Explanation:  "一个英文短语，意为\"看着我的眼睛\"，在网络上常用于强调重要话题或表达严肃情感时使用。这个梗经常出现在各种视频和图片中，用来吸引注意力或表达真诚。",
		ReferenceURL: "https://knowyourmeme.com",
	},
	{
		Term:        "完了",
		Explanation: "表示事情已经结束或无法挽回的状态，常用于表达无奈或绝望的情绪。在网络语境中，\"完了\"经常被用作一种夸张的表达方式，表示遇到了麻烦或不好的情况。",
	},
}

// SubmissionService orchestrates submission creation: it routes the
// content to one analysis path, reconciles detected terms against the
// meme catalog, and persists the submission with its meme relation.
type SubmissionService struct {
	submissionRepo *repository.SubmissionRepository
	memeRepo       *repository.MemeRepository
	analyzer       Analyzer
	fallback       []Detection
	logger         *logger.Logger
}

// SubmissionConfig holds configuration for the submission service.
type SubmissionConfig struct {
	// FallbackDetections replaces DefaultFallbackDetections when non-nil.
	FallbackDetections []Detection
}

// NewSubmissionService creates a new submission service.
// Parameters:
//   - submissionRepo: submission persistence.
//   - memeRepo: meme catalog used for reconciliation.
//   - analyzer: meme detection backend.
//   - log: structured logger.
//   - cfg: optional service configuration; nil uses defaults.
// Returns:
//   - *SubmissionService: initialized service.
func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	memeRepo *repository.MemeRepository,
	analyzer Analyzer,
	log *logger.Logger,
	cfg *SubmissionConfig,
) *SubmissionService {
	fallback := DefaultFallbackDetections
	if cfg != nil && cfg.FallbackDetections != nil {
		fallback = cfg.FallbackDetections
	}
	return &SubmissionService{
		submissionRepo: submissionRepo,
		memeRepo:       memeRepo,
		analyzer:       analyzer,
		fallback:       fallback,
		logger:         log,
	}
}

// log returns a logger from context if available, otherwise the service logger
func (s *SubmissionService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// CreateSubmissionInput is the request payload for submission creation.
type CreateSubmissionInput struct {
	TextContent string `json:"textContent"`
	ImageURL    string `json:"imageUrl"`
	VideoURL    string `json:"videoUrl"`
}

// Create analyzes the submitted content, reconciles the detected terms
// against the meme catalog, and persists the submission. Analysis
// failures never fail the call; repository failures propagate.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - input: submission content, at most one field is inspected.
// Returns:
//   - *domain.Submission: persisted submission with DetectedMemes populated.
//   - error: non-nil only when the store fails.
func (s *SubmissionService) Create(ctx context.Context, input *CreateSubmissionInput) (*domain.Submission, error) {
	submission := &domain.Submission{
		TextContent: input.TextContent,
		ImageURL:    input.ImageURL,
		VideoURL:    input.VideoURL,
	}

	detections := s.analyze(ctx, input)

	memes := make([]domain.Meme, 0, len(detections))
	for _, d := range detections {
		meme, err := s.memeRepo.FindOrCreate(ctx, &domain.Meme{
			Language:     domain.LanguageChinese,
			Term:         d.Term,
			Explanation:  d.Explanation,
			ReferenceURL: d.ReferenceURL,
		})
		if err != nil {
			return nil, err
		}
		memes = append(memes, *meme)
	}
	submission.DetectedMemes = memes

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldSubmissionID: submission.ID,
		logger.FieldCount:        len(memes),
	}).Info("Submission created")

	return submission, nil
}

// analyze selects one analysis path by first-match precedence and invokes
// the analyzer. An analyzer error is replaced by the fallback detection
// list; no error leaves this method.
func (s *SubmissionService) analyze(ctx context.Context, input *CreateSubmissionInput) []Detection {
	var detections []Detection
	var err error

	switch {
	case input.TextContent != "":
		detections, err = s.analyzer.AnalyzeText(ctx, input.TextContent)
	case input.ImageURL != "":
		detections, err = s.analyzer.AnalyzeImage(ctx, input.ImageURL)
	case input.VideoURL != "":
		detections, err = s.analyzer.AnalyzeVideo(ctx, input.VideoURL)
	default:
		return []Detection{}
	}

	if err != nil {
		s.log(ctx).WithError(err).Warn("Analysis failed, using fallback detections")
		return s.fallback
	}
	return detections
}

// List retrieves all non-soft-deleted submissions with detected memes.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Submission: submissions in store-default order.
//   - error: non-nil if the query fails.
func (s *SubmissionService) List(ctx context.Context) ([]domain.Submission, error) {
	return s.submissionRepo.List(ctx)
}

// Get retrieves a single submission by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: submission ID.
// Returns:
//   - *domain.Submission: submission with detected memes.
//   - error: non-nil if lookup fails.
func (s *SubmissionService) Get(ctx context.Context, id uint) (*domain.Submission, error) {
	return s.submissionRepo.GetByID(ctx, id)
}
