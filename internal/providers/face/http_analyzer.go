package face

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/yoockh/yoointerview/internal/models"
)

// HTTPAnalyzer posts raw media bytes to a landmark-inference sidecar (the
// mediapipe service) and maps its JSON reply onto metric scores. Any
// transport or decode failure degrades to the default record.
type HTTPAnalyzer struct {
	endpoint string
	client   *http.Client
}

func NewHTTPAnalyzer(endpoint string) *HTTPAnalyzer {
	return &HTTPAnalyzer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *HTTPAnalyzer) Close() error { return nil }

type faceResponse struct {
	EyeContactRate    float64 `json:"eye_contact_rate"`
	FaceDetectionRate float64 `json:"face_detection_rate"`
	HeadPositionScore float64 `json:"head_position_score"`
	Error             string  `json:"error"`
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, media []byte) models.FaceMetrics {
	if len(media) == 0 {
		return models.DefaultFaceMetrics("empty media")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(media))
	if err != nil {
		return models.DefaultFaceMetrics("bad analyzer request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := a.client.Do(req)
	if err != nil {
		return models.DefaultFaceMetrics("face analyzer unreachable: " + err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.DefaultFaceMetrics("face analyzer status " + resp.Status)
	}

	const maxBody = 1 << 20
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return models.DefaultFaceMetrics("face analyzer read: " + err.Error())
	}

	var out faceResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return models.DefaultFaceMetrics("face analyzer decode: " + err.Error())
	}
	if out.Error != "" {
		return models.DefaultFaceMetrics(out.Error)
	}

	return models.FaceMetrics{
		Scores: map[string]float64{
			models.FaceEyeContactRate: clamp01(out.EyeContactRate),
			models.FaceDetectionRate:  clamp01(out.FaceDetectionRate),
			models.FaceHeadPosition:   clamp01(out.HeadPositionScore),
		},
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
