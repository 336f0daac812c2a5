package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/memelens/internal/logger"
	"github.com/timmy/memelens/internal/prompts"
)

// Detection is a single meme/slang candidate returned by analysis.
type Detection struct {
	Term         string `json:"term"`
	Explanation  string `json:"explanation"`
	ReferenceURL string `json:"referenceUrl,omitempty"`
}

// Analyzer detects memes in submitted content. Implementations may return
// an error; the default AnalysisService never does, it degrades to an
// empty result instead.
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) ([]Detection, error)
	AnalyzeImage(ctx context.Context, imageURL string) ([]Detection, error)
	AnalyzeVideo(ctx context.Context, videoURL string) ([]Detection, error)
}

// APIKeyPlaceholder is the sample credential shipped in .env.example.
// A config carrying it is treated the same as one carrying no key at all.
const APIKeyPlaceholder = "your_api_key_here"

// AnalysisConfig holds configuration for the analysis service.
type AnalysisConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// IsConfigured reports whether the config carries a usable credential.
// A nil config, an empty key, or the documented placeholder all mean the
// analysis service runs disabled. This is a pure function of the config
// value, not of process environment.
func (c *AnalysisConfig) IsConfigured() bool {
	return c != nil && c.APIKey != "" && c.APIKey != APIKeyPlaceholder
}

// AnalysisService calls an OpenAI-compatible chat-completions endpoint to
// detect memes in text. Unconfigured or failing calls yield an empty
// detection list, never an error: analysis is best-effort by contract.
type AnalysisService struct {
	client     *resty.Client
	model      string
	endpoint   string
	configured bool
	logger     *logger.Logger
}

// NewAnalysisService creates a new analysis service.
// Parameters:
//   - cfg: analysis configuration including model and credential.
//   - log: structured logger.
// Returns:
//   - *AnalysisService: initialized client wrapper; disabled when the
//     config holds no usable credential.
func NewAnalysisService(cfg *AnalysisConfig, log *logger.Logger) *AnalysisService {
	configured := cfg.IsConfigured()
	if !configured {
		log.Warn("AI credential not configured, meme analysis disabled")
	}

	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	if configured {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	// Set timeout to prevent hanging requests
	client.SetTimeout(60 * time.Second)

	baseURL := "https://api.openai.com/v1"
	if cfg != nil && cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	model := "gpt-4o-mini"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	return &AnalysisService{
		client:     client,
		model:      model,
		endpoint:   baseURL + "/chat/completions",
		configured: configured,
		logger:     log,
	}
}

// IsEnabled reports whether the service will actually call the model.
func (s *AnalysisService) IsEnabled() bool {
	return s.configured
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// AnalyzeText detects memes in free text.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - text: raw submitted text.
// Returns:
//   - []Detection: detected memes, empty when disabled or on any failure.
//   - error: always nil for this implementation.
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) ([]Detection, error) {
	if !s.configured {
		return []Detection{}, nil
	}

	raw, err := s.complete(ctx, prompts.TextAnalysisPrompt(text))
	if err != nil {
		s.logger.WithError(err).Error("Text analysis call failed")
		return []Detection{}, nil
	}

	return ParseDetections(raw), nil
}

// AnalyzeImage detects memes for an image submission. Analysis runs as
// text analysis over a synthetic string embedding the image URL; the
// image bytes are never fetched or inspected. Contract behavior, do not
// upgrade to vision analysis here.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - imageURL: URL of the submitted image.
// Returns:
//   - []Detection: detected memes, empty when disabled or on any failure.
//   - error: always nil for this implementation.
func (s *AnalysisService) AnalyzeImage(ctx context.Context, imageURL string) ([]Detection, error) {
	return s.AnalyzeText(ctx, prompts.ImageAsText(imageURL))
}

// AnalyzeVideo detects memes for a video link.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoURL: URL of the submitted video.
// Returns:
//   - []Detection: detected memes, empty when disabled or on any failure.
//   - error: always nil for this implementation.
func (s *AnalysisService) AnalyzeVideo(ctx context.Context, videoURL string) ([]Detection, error) {
	if !s.configured {
		return []Detection{}, nil
	}

	raw, err := s.complete(ctx, prompts.VideoAnalysisPrompt(videoURL))
	if err != nil {
		s.logger.WithError(err).Error("Video analysis call failed")
		return []Detection{}, nil
	}

	return ParseDetections(raw), nil
}

// complete sends a single-message chat completion and returns the raw
// model output.
func (s *AnalysisService) complete(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	var resp chatResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call analysis API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return "", fmt.Errorf("analysis API error: HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		}
		return "", fmt.Errorf("analysis API error: HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
	}

	if resp.Error != nil {
		return "", fmt.Errorf("analysis API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in analysis response (status: %d)", httpResp.StatusCode())
	}

	return resp.Choices[0].Message.Content, nil
}
