package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/timmy/memelens/internal/storage"
)

// allowedImageExtensions are the only upload types accepted.
var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// UploadHandler handles image upload endpoints.
type UploadHandler struct {
	storage   storage.ObjectStorage
	maxSizeMB int64
}

// NewUploadHandler creates a new upload handler.
// Parameters:
//   - objectStorage: backend the files are written to.
//   - maxSizeMB: upload size limit in megabytes.
// Returns:
//   - *UploadHandler: initialized handler.
func NewUploadHandler(objectStorage storage.ObjectStorage, maxSizeMB int64) *UploadHandler {
	return &UploadHandler{
		storage:   objectStorage,
		maxSizeMB: maxSizeMB,
	}
}

// UploadFile handles POST /uploads. It accepts a multipart "file" field,
// validates type and size, stores the file under a random name, and
// returns the public URL. Nothing is persisted on validation failure.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *UploadHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A file field is required",
		})
		return
	}

	maxSize := h.maxSizeMB * 1024 * 1024
	if fileHeader.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File exceeds the %dMB size limit", h.maxSizeMB),
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := allowedImageExtensions[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Only jpg, jpeg, png and gif images are supported",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	key := uuid.New().String() + ext
	if err := h.storage.Save(c.Request.Context(), key, file, fileHeader.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store uploaded file: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"imageUrl": h.storage.URL(key),
	})
}
