package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/memelens/internal/api/handler"
	"github.com/timmy/memelens/internal/api/middleware"
	"github.com/timmy/memelens/internal/config"
	"github.com/timmy/memelens/internal/service"
	"github.com/timmy/memelens/internal/storage"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	memeService *service.MemeService,
	submissionService *service.SubmissionService,
	objectStorage storage.ObjectStorage,
	cfg *config.Config,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	memeHandler := handler.NewMemeHandler(memeService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	uploadHandler := handler.NewUploadHandler(objectStorage, cfg.Upload.MaxSizeMB)

	// Health check
	r.GET("/health", healthHandler.Health)

	// Memes
	r.GET("/memes", memeHandler.ListMemes)
	r.GET("/memes/:id", memeHandler.GetMeme)
	r.POST("/memes", memeHandler.CreateMeme)

	// Submissions
	r.GET("/submissions", submissionHandler.ListSubmissions)
	r.GET("/submissions/:id", submissionHandler.GetSubmission)
	r.POST("/submissions", submissionHandler.CreateSubmission)

	// Uploads
	r.POST("/uploads", uploadHandler.UploadFile)

	// Serve locally stored uploads so returned URLs resolve
	if local, ok := objectStorage.(*storage.LocalStorage); ok {
		r.Static("/uploads", local.Dir())
	}

	return r
}
