package models

// Evaluation is the LLM's scoring of a single response. Score is a float in
// [0,1]; list fields are deduplicated at aggregation time. When the evaluator
// fails, the session records a default evaluation (score 0, Error set) and
// keeps going.
type Evaluation struct {
	Score               float64  `json:"score"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Recommendations     []string `json:"recommendations"`
	Feedback            string   `json:"feedback"`
	Error               string   `json:"error,omitempty"`
}

// DefaultEvaluation is the degraded record used when evaluation fails; the
// feedback explains what went wrong so it is visible in the final summary.
func DefaultEvaluation(reason string) Evaluation {
	return Evaluation{
		Score:               0,
		Strengths:           []string{},
		AreasForImprovement: []string{"Unable to evaluate response due to an error"},
		Recommendations:     []string{"Please try again"},
		Feedback:            "Evaluation unavailable: " + reason,
		Error:               reason,
	}
}
