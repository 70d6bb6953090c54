package models

// Canonical face metric keys. Real analyzers emit these; aggregation works
// over whatever keys are present so an analyzer may add more.
const (
	FaceEyeContactRate = "eye_contact_rate"
	FaceDetectionRate  = "face_detection_rate"
	FaceHeadPosition   = "head_position_score"
)

// Canonical voice metric keys.
const (
	VoiceSpeechRate = "speech_rate"
	VoiceVolume     = "volume"
	VoicePitch      = "pitch"
	VoiceFluency    = "fluency"
)

// FaceMetrics holds per-response facial engagement scores keyed by metric
// name, each in [0,1]. When analysis fails, Error is set and Scores carries
// the zero defaults; the record is still stored.
type FaceMetrics struct {
	Scores map[string]float64 `json:"scores"`
	Error  string             `json:"error,omitempty"`
}

// VoiceMetrics holds per-response vocal delivery scores, same contract as
// FaceMetrics.
type VoiceMetrics struct {
	Scores map[string]float64 `json:"scores"`
	Error  string             `json:"error,omitempty"`
}

// DefaultFaceMetrics is the error-flagged record an analyzer returns when it
// cannot produce a measurement.
func DefaultFaceMetrics(reason string) FaceMetrics {
	return FaceMetrics{
		Scores: map[string]float64{
			FaceEyeContactRate: 0,
			FaceDetectionRate:  0,
			FaceHeadPosition:   0,
		},
		Error: reason,
	}
}

// DefaultVoiceMetrics is the error-flagged record for voice analysis failure.
func DefaultVoiceMetrics(reason string) VoiceMetrics {
	return VoiceMetrics{
		Scores: map[string]float64{
			VoiceSpeechRate: 0,
			VoiceVolume:     0,
			VoicePitch:      0,
			VoiceFluency:    0,
		},
		Error: reason,
	}
}
