package face

import (
	"context"

	"github.com/yoockh/yoointerview/internal/models"
)

// StaticAnalyzer returns fixed mid-range scores. It is the dev/test stand-in
// when no inference sidecar is configured; it honors the same never-fails
// contract as the real analyzer.
type StaticAnalyzer struct {
	Metrics models.FaceMetrics
}

func NewStaticAnalyzer() *StaticAnalyzer {
	return &StaticAnalyzer{
		Metrics: models.FaceMetrics{
			Scores: map[string]float64{
				models.FaceEyeContactRate: 0.5,
				models.FaceDetectionRate:  1.0,
				models.FaceHeadPosition:   0.5,
			},
		},
	}
}

func (a *StaticAnalyzer) Close() error { return nil }

func (a *StaticAnalyzer) Analyze(ctx context.Context, media []byte) models.FaceMetrics {
	if len(media) == 0 {
		return models.DefaultFaceMetrics("empty media")
	}
	out := models.FaceMetrics{Scores: map[string]float64{}, Error: a.Metrics.Error}
	for k, v := range a.Metrics.Scores {
		out.Scores[k] = v
	}
	return out
}
