package voice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/yoointerview/internal/models"
)

type fakeTranscriber struct {
	text       string
	confidence float64
	err        error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, float64, error) {
	return f.text, f.confidence, f.err
}

func (f *fakeTranscriber) Close() error { return nil }

func TestSpeechAnalyzer(t *testing.T) {
	// 10 seconds of a 200 Hz tone at conversational amplitude
	media := sinePCM(200, 16000, 10, 0.1)

	a := NewSpeechAnalyzer(&fakeTranscriber{
		text:       "I built the backend in Go using goroutines and channels for the pipeline work and shipped it on time so the team was happy with the result overall",
		confidence: 0.9,
	}, 16000, "en-US")

	out := a.Analyze(context.Background(), media)
	require.Empty(t, out.Error)

	// 28 words over 10 seconds -> 2.8 wps -> 0.7
	assert.InDelta(t, 0.7, out.Scores[models.VoiceSpeechRate], 1e-9)
	assert.InDelta(t, 0.9, out.Scores[models.VoiceFluency], 1e-9)
	assert.Greater(t, out.Scores[models.VoiceVolume], 0.0)
	assert.InDelta(t, 0.5, out.Scores[models.VoicePitch], 0.02)
}

func TestSpeechAnalyzerEmptyMedia(t *testing.T) {
	a := NewSpeechAnalyzer(&fakeTranscriber{}, 16000, "en-US")

	out := a.Analyze(context.Background(), nil)
	assert.Equal(t, "empty media", out.Error)
	assert.Zero(t, out.Scores[models.VoiceVolume])
}

func TestSpeechAnalyzerTranscriptionFailure(t *testing.T) {
	media := sinePCM(200, 16000, 2, 0.1)
	a := NewSpeechAnalyzer(&fakeTranscriber{err: errors.New("quota exceeded")}, 16000, "en-US")

	out := a.Analyze(context.Background(), media)

	// signal-derived scores survive; transcript-derived ones zero out
	assert.Contains(t, out.Error, "transcription failed")
	assert.Greater(t, out.Scores[models.VoiceVolume], 0.0)
	assert.Greater(t, out.Scores[models.VoicePitch], 0.0)
	assert.Zero(t, out.Scores[models.VoiceSpeechRate])
	assert.Zero(t, out.Scores[models.VoiceFluency])
}
