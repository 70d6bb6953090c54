package face

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/yoointerview/internal/models"
)

func TestHTTPAnalyzerSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"eye_contact_rate": 0.75, "face_detection_rate": 1.4, "head_position_score": -0.2}`))
	}))
	defer srv.Close()

	a := NewHTTPAnalyzer(srv.URL)
	out := a.Analyze(context.Background(), []byte("frames"))

	require.Empty(t, out.Error)
	assert.Equal(t, 0.75, out.Scores[models.FaceEyeContactRate])
	// out-of-range sidecar values are clamped
	assert.Equal(t, 1.0, out.Scores[models.FaceDetectionRate])
	assert.Equal(t, 0.0, out.Scores[models.FaceHeadPosition])
}

func TestHTTPAnalyzerEmptyMedia(t *testing.T) {
	a := NewHTTPAnalyzer("http://127.0.0.1:1")
	out := a.Analyze(context.Background(), nil)

	assert.Equal(t, "empty media", out.Error)
	assert.Zero(t, out.Scores[models.FaceEyeContactRate])
}

func TestHTTPAnalyzerUnreachable(t *testing.T) {
	a := NewHTTPAnalyzer("http://127.0.0.1:1")
	out := a.Analyze(context.Background(), []byte("frames"))

	assert.Contains(t, out.Error, "unreachable")
	assert.Contains(t, out.Scores, models.FaceEyeContactRate)
	assert.Zero(t, out.Scores[models.FaceEyeContactRate])
}

func TestHTTPAnalyzerBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	out := NewHTTPAnalyzer(srv.URL).Analyze(context.Background(), []byte("frames"))
	assert.Contains(t, out.Error, "status")
}

func TestHTTPAnalyzerSidecarError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "no face detected"}`))
	}))
	defer srv.Close()

	out := NewHTTPAnalyzer(srv.URL).Analyze(context.Background(), []byte("frames"))
	assert.Equal(t, "no face detected", out.Error)
}

func TestHTTPAnalyzerBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	out := NewHTTPAnalyzer(srv.URL).Analyze(context.Background(), []byte("frames"))
	assert.Contains(t, out.Error, "decode")
}
