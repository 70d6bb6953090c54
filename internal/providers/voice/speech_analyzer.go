package voice

import (
	"context"
	"strings"

	"github.com/yoockh/yoointerview/internal/models"
	"github.com/yoockh/yoointerview/internal/providers/stt"
)

// SpeechAnalyzer derives delivery metrics from LINEAR16 PCM audio: volume
// and pitch straight from the samples, speech rate and fluency from the
// transcriber (word pace and recognizer confidence). A transcription failure
// keeps the signal-derived scores and flags the record instead of aborting.
type SpeechAnalyzer struct {
	stt          stt.Provider
	sampleRateHz int
	language     string
}

func NewSpeechAnalyzer(transcriber stt.Provider, sampleRateHz int, language string) *SpeechAnalyzer {
	if sampleRateHz <= 0 {
		sampleRateHz = 16000
	}
	if language == "" {
		language = "en-US"
	}
	return &SpeechAnalyzer{stt: transcriber, sampleRateHz: sampleRateHz, language: language}
}

func (a *SpeechAnalyzer) Close() error { return a.stt.Close() }

func (a *SpeechAnalyzer) Analyze(ctx context.Context, media []byte) models.VoiceMetrics {
	if len(media) == 0 {
		return models.DefaultVoiceMetrics("empty media")
	}

	volume := rmsVolume(media)
	pitch := pitchScore(media, a.sampleRateHz)
	seconds := float64(len(media)/2) / float64(a.sampleRateHz)

	text, confidence, err := a.stt.Transcribe(ctx, media, a.language)
	if err != nil {
		return models.VoiceMetrics{
			Scores: map[string]float64{
				models.VoiceSpeechRate: 0,
				models.VoiceVolume:     volume,
				models.VoicePitch:      pitch,
				models.VoiceFluency:    0,
			},
			Error: "transcription failed: " + err.Error(),
		}
	}

	return models.VoiceMetrics{
		Scores: map[string]float64{
			models.VoiceSpeechRate: speechRateScore(len(strings.Fields(text)), seconds),
			models.VoiceVolume:     volume,
			models.VoicePitch:      pitch,
			models.VoiceFluency:    clamp01(confidence),
		},
	}
}
