package models

// SessionStatus is the lifecycle state of an interview session.
// Transitions are monotonic: active -> timed_out or active -> complete,
// and timed_out -> complete (explicit end). Terminal states never revert.
type SessionStatus string

const (
	StatusActive   SessionStatus = "active"
	StatusTimedOut SessionStatus = "timed_out"
	StatusComplete SessionStatus = "complete"
)

// Terminal reports whether no further responses may be recorded.
func (s SessionStatus) Terminal() bool {
	return s == StatusTimedOut || s == StatusComplete
}

// SessionProgress is the lightweight status view exposed to the transport
// layer without copying the response log.
type SessionProgress struct {
	SessionID      string        `json:"session_id"`
	Status         SessionStatus `json:"status"`
	CurrentIndex   int           `json:"current_index"`
	TotalQuestions int           `json:"total_questions"`
}
