package models

import "time"

// ResponseRecord is one processed answer: the question snapshot, the
// transcribed/typed response text, and the three analysis outputs (possibly
// degraded). Immutable once appended to the session log.
type ResponseRecord struct {
	Question     Question     `json:"question"`
	ResponseText string       `json:"response_text"`
	FaceMetrics  FaceMetrics  `json:"face_metrics"`
	VoiceMetrics VoiceMetrics `json:"voice_metrics"`
	Evaluation   Evaluation   `json:"evaluation"`
	SubmittedAt  time.Time    `json:"submitted_at"`
}

// ProcessingStatus classifies the outcome of a submit call.
type ProcessingStatus string

const (
	// ProcessingOK means the response was recorded and more questions remain.
	ProcessingOK ProcessingStatus = "ok"
	// ProcessingComplete means the response was recorded and it was the last one.
	ProcessingComplete ProcessingStatus = "complete"
	// ProcessingTimedOut means the deadline had passed; nothing was analyzed
	// or recorded.
	ProcessingTimedOut ProcessingStatus = "timed_out"
)

// ProcessingResult is returned to the transport layer after each submission.
type ProcessingResult struct {
	Status       ProcessingStatus `json:"status"`
	NextQuestion *Question        `json:"next_question,omitempty"`
	Record       *ResponseRecord  `json:"record,omitempty"`
	Progress     SessionProgress  `json:"progress"`
}

// EvaluationSummary is the session-level reduction of all per-response
// evaluations: mean score plus the set union of the list fields.
type EvaluationSummary struct {
	Score               float64  `json:"score"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Recommendations     []string `json:"recommendations"`
}

// SessionSummary is the final feedback package. It is computed once, cached,
// and returned unchanged by every subsequent end call.
type SessionSummary struct {
	SessionID         string             `json:"session_id"`
	Status            SessionStatus      `json:"status"`
	TotalQuestions    int                `json:"total_questions"`
	QuestionsAnswered int                `json:"questions_answered"`
	DurationSeconds   int64              `json:"duration_seconds"`
	FaceMetrics       map[string]float64 `json:"face_metrics"`
	VoiceMetrics      map[string]float64 `json:"voice_metrics"`
	Evaluation        EvaluationSummary  `json:"evaluation"`
	Responses         []ResponseRecord   `json:"responses"`
	EndedAt           time.Time          `json:"ended_at"`
}
