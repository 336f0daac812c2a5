package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/memelens/internal/service"
	"gorm.io/gorm"
)

// SubmissionHandler handles submission endpoints.
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler.
// Parameters:
//   - submissionService: submission service instance.
// Returns:
//   - *SubmissionHandler: initialized handler.
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// CreateSubmission handles POST /submissions. Analysis and reconciliation
// run synchronously; the response carries the populated meme list.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var input service.CreateSubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	submission, err := h.submissionService.Create(c.Request.Context(), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create submission: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, submission)
}

// GetSubmission handles GET /submissions/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid submission ID",
		})
		return
	}

	submission, err := h.submissionService.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Submission not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get submission: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, submission)
}

// ListSubmissions handles GET /submissions.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	submissions, err := h.submissionService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list submissions: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, submissions)
}
