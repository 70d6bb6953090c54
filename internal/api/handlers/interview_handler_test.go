package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/yoointerview/internal/models"
	"github.com/yoockh/yoointerview/internal/services"
)

type stubFace struct{}

func (stubFace) Analyze(ctx context.Context, media []byte) models.FaceMetrics {
	return models.FaceMetrics{Scores: map[string]float64{models.FaceEyeContactRate: 0.8}}
}

func (stubFace) Close() error { return nil }

type stubVoice struct{}

func (stubVoice) Analyze(ctx context.Context, media []byte) models.VoiceMetrics {
	return models.VoiceMetrics{Scores: map[string]float64{models.VoiceVolume: 0.5}}
}

func (stubVoice) Close() error { return nil }

type stubEvaluator struct{}

func (stubEvaluator) GenerateQuestions(ctx context.Context, resume *models.ResumeData) ([]models.Question, error) {
	return []models.Question{
		{Text: "Q1", Category: "technical"},
		{Text: "Q2", Category: "behavioral"},
	}, nil
}

func (stubEvaluator) EvaluateResponse(ctx context.Context, responseText string, q models.Question, resume *models.ResumeData) (models.Evaluation, error) {
	return models.Evaluation{Score: 0.75, Feedback: "fine"}, nil
}

func testRouter(userID string) (*gin.Engine, *services.SessionRegistry) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	registry := services.NewSessionRegistry(stubFace{}, stubVoice{}, stubEvaluator{}, services.RegistryConfig{
		DefaultDuration: 10 * time.Minute,
		AdapterTimeout:  5 * time.Second,
	}, log)

	parser := services.NewResumeParser()
	media := services.NewMediaService(nil, log)
	h := NewInterviewHandler(registry, parser, media)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/interview/start", h.Start)
	r.POST("/interview/:session_id/response", h.Submit)
	r.GET("/interview/:session_id/status", h.Status)
	r.POST("/interview/:session_id/end", h.End)

	return r, registry
}

func resumeForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("resume", "resume.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Jane Smith\njane@example.com\nGo developer"))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func startSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	body, contentType := resumeForm(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/interview/start", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		SessionID      string          `json:"session_id"`
		FirstQuestion  models.Question `json:"first_question"`
		TotalQuestions int             `json:"total_questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.SessionID)
	assert.Equal(t, "Q1", out.FirstQuestion.Text)
	assert.Equal(t, 2, out.TotalQuestions)
	return out.SessionID
}

func TestInterviewFlow(t *testing.T) {
	r, _ := testRouter("user-1")
	sessionID := startSession(t, r)

	// status
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/interview/"+sessionID+"/status", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var progress models.SessionProgress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
	assert.Equal(t, models.StatusActive, progress.Status)
	assert.Equal(t, 0, progress.CurrentIndex)

	// first answer
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("response_text", "my answer"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/interview/"+sessionID+"/response", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result models.ProcessingResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.ProcessingOK, result.Status)
	require.NotNil(t, result.NextQuestion)
	assert.Equal(t, "Q2", result.NextQuestion.Text)

	// end
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interview/"+sessionID+"/end", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.SessionSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.QuestionsAnswered)
	assert.InDelta(t, 0.75, summary.Evaluation.Score, 1e-9)
}

func TestSubmitMissingText(t *testing.T) {
	r, _ := testRouter("user-1")
	sessionID := startSession(t, r)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/interview/"+sessionID+"/response", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEndEmptyWithoutForce(t *testing.T) {
	r, _ := testRouter("user-1")
	sessionID := startSession(t, r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interview/"+sessionID+"/end", nil))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interview/"+sessionID+"/end?force=true", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatusUnknownSession(t *testing.T) {
	r, _ := testRouter("user-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/interview/nope/status", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionOwnership(t *testing.T) {
	r, registry := testRouter("user-1")
	sessionID := startSession(t, r)

	// same registry, different authenticated user
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)
	other := gin.New()
	other.Use(func(c *gin.Context) {
		c.Set("user_id", "intruder")
		c.Next()
	})
	h := NewInterviewHandler(registry, services.NewResumeParser(), services.NewMediaService(nil, log))
	other.GET("/interview/:session_id/status", h.Status)

	w := httptest.NewRecorder()
	other.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/interview/"+sessionID+"/status", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStartBadUpload(t *testing.T) {
	r, _ := testRouter("user-1")

	req := httptest.NewRequest(http.MethodPost, "/interview/start", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartBadDuration(t *testing.T) {
	r, _ := testRouter("user-1")

	body, contentType := resumeForm(t, map[string]string{"duration_minutes": "-5"})
	req := httptest.NewRequest(http.MethodPost, "/interview/start", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
