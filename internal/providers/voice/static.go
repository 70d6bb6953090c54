package voice

import (
	"context"

	"github.com/yoockh/yoointerview/internal/models"
)

// StaticAnalyzer is the dev/test stand-in, mirroring face.StaticAnalyzer.
type StaticAnalyzer struct {
	Metrics models.VoiceMetrics
}

func NewStaticAnalyzer() *StaticAnalyzer {
	return &StaticAnalyzer{
		Metrics: models.VoiceMetrics{
			Scores: map[string]float64{
				models.VoiceSpeechRate: 0.6,
				models.VoiceVolume:     0.5,
				models.VoicePitch:      0.5,
				models.VoiceFluency:    0.7,
			},
		},
	}
}

func (a *StaticAnalyzer) Close() error { return nil }

func (a *StaticAnalyzer) Analyze(ctx context.Context, media []byte) models.VoiceMetrics {
	if len(media) == 0 {
		return models.DefaultVoiceMetrics("empty media")
	}
	out := models.VoiceMetrics{Scores: map[string]float64{}, Error: a.Metrics.Error}
	for k, v := range a.Metrics.Scores {
		out.Scores[k] = v
	}
	return out
}
