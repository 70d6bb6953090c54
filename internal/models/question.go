package models

// Question is one generated interview question. Immutable once the session's
// question sequence is generated.
type Question struct {
	Text             string   `json:"text"`
	Category         string   `json:"category"`   // technical|behavioral|experience
	Difficulty       string   `json:"difficulty"` // easy|medium|hard
	ExpectedKeywords []string `json:"expected_keywords,omitempty"`
}
