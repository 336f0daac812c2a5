package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/memelens/internal/config"
	"github.com/timmy/memelens/internal/domain"
	"github.com/timmy/memelens/internal/logger"
	"github.com/timmy/memelens/internal/repository"
	"github.com/timmy/memelens/internal/service"
	"github.com/timmy/memelens/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestServer wires a full router against an in-memory database, a
// temp-dir upload store, and a disabled analysis service.
func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	uploadDir := t.TempDir()
	cfg := &config.Config{
		Server: config.ServerConfig{
			Mode:          "test",
			PublicBaseURL: "http://localhost:3000",
			CORS:          config.CORSConfig{AllowAllOrigins: true},
		},
		Upload: config.UploadConfig{
			Backend:   "local",
			Dir:       uploadDir,
			MaxSizeMB: 5,
		},
	}

	objectStorage, err := storage.NewStorage(&cfg.Upload, cfg.Server.PublicBaseURL)
	require.NoError(t, err)

	memeRepo := repository.NewMemeRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	// No credential: analysis runs disabled and detects nothing.
	analysisService := service.NewAnalysisService(&service.AnalysisConfig{}, logger.GetDefault())
	memeService := service.NewMemeService(memeRepo)
	submissionService := service.NewSubmissionService(
		submissionRepo, memeRepo, analysisService, logger.GetDefault(), nil)

	router := SetupRouter(memeService, submissionService, objectStorage, cfg)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, uploadDir
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestMemeRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/memes", map[string]string{
		"term":         "绝绝子",
		"explanation":  "太绝了，表示极度赞叹",
		"referenceUrl": "https://example.com/jjz",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Meme
	decodeJSON(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.LanguageChinese, created.Language)

	listResp, err := http.Get(srv.URL + "/memes")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var memes []domain.Meme
	decodeJSON(t, listResp, &memes)
	require.Len(t, memes, 1)
	assert.Equal(t, "绝绝子", memes[0].Term)
	assert.Equal(t, "太绝了，表示极度赞叹", memes[0].Explanation)
	assert.Equal(t, "https://example.com/jjz", memes[0].ReferenceURL)
}

func TestGetMemeByID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/memes", map[string]string{"term": "yyds"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.Meme
	decodeJSON(t, resp, &created)

	getResp, err := http.Get(fmt.Sprintf("%s/memes/%d", srv.URL, created.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var fetched domain.Meme
	decodeJSON(t, getResp, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "yyds", fetched.Term)

	missingResp, err := http.Get(srv.URL + "/memes/9999")
	require.NoError(t, err)
	defer missingResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, missingResp.StatusCode)
}

func TestCreateMemeRequiresTerm(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/memes", map[string]string{"explanation": "no term"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateSubmissionWithDisabledAnalysis(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/submissions", map[string]string{
		"textContent": "look at my eyes, 完了",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var submission domain.Submission
	decodeJSON(t, resp, &submission)
	assert.NotZero(t, submission.ID)
	assert.Equal(t, "look at my eyes, 完了", submission.TextContent)
	assert.Empty(t, submission.DetectedMemes)

	listResp, err := http.Get(srv.URL + "/submissions")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var submissions []domain.Submission
	decodeJSON(t, listResp, &submissions)
	require.Len(t, submissions, 1)
	assert.Empty(t, submissions[0].DetectedMemes)
}

// multipartUpload builds a multipart body with a single "file" part.
func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadStoresImageAndReturnsURL(t *testing.T) {
	srv, uploadDir := newTestServer(t)

	body, contentType := multipartUpload(t, "meme.jpg", []byte("fake-jpeg-bytes"))
	resp, err := http.Post(srv.URL+"/uploads", contentType, body)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		ImageURL string `json:"imageUrl"`
	}
	decodeJSON(t, resp, &result)
	assert.Contains(t, result.ImageURL, "http://localhost:3000/uploads/")

	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".jpg", filepath.Ext(entries[0].Name()))
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	srv, uploadDir := newTestServer(t)

	// 6MB payload against the 5MB limit
	body, contentType := multipartUpload(t, "big.jpg", make([]byte, 6*1024*1024))
	resp, err := http.Post(srv.URL+"/uploads", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads must not be persisted")
}

func TestUploadRejectsNonImageFile(t *testing.T) {
	srv, uploadDir := newTestServer(t)

	body, contentType := multipartUpload(t, "notes.txt", []byte("plain text"))
	resp, err := http.Post(srv.URL+"/uploads", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadRequiresFileField(t *testing.T) {
	srv, _ := newTestServer(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.Close())

	resp, err := http.Post(srv.URL+"/uploads", writer.FormDataContentType(), body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
