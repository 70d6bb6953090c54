package llm

import (
	"context"
	"sync"
)

// Static returns canned completions. It backs keyless local runs and tests;
// the default payloads are valid question/evaluation JSON so the whole
// interview flow works end to end without an API key.
type Static struct {
	mu        sync.Mutex
	responses []string
	next      int
	Err       error

	prompts []string
}

// NewStatic cycles through the given responses in order, repeating the last
// one once exhausted.
func NewStatic(responses ...string) *Static {
	if len(responses) == 0 {
		responses = []string{staticQuestionsJSON, staticEvaluationJSON}
	}
	return &Static{responses: responses}
}

func (s *Static) Close() error { return nil }

func (s *Static) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, prompt)
	if s.Err != nil {
		return "", s.Err
	}

	out := s.responses[s.next]
	if s.next < len(s.responses)-1 {
		s.next++
	}
	return out, nil
}

// Prompts returns a copy of every prompt seen so far.
func (s *Static) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.prompts))
	copy(out, s.prompts)
	return out
}

const staticQuestionsJSON = `[
  {"text": "Tell me about your experience with Go programming.", "category": "technical", "difficulty": "medium", "expected_keywords": ["goroutines", "channels"]},
  {"text": "What projects have you worked on that you're most proud of?", "category": "experience", "difficulty": "easy", "expected_keywords": []},
  {"text": "How do you handle tight deadlines and multiple priorities?", "category": "behavioral", "difficulty": "medium", "expected_keywords": []}
]`

const staticEvaluationJSON = `{
  "score": 0.7,
  "strengths": ["Clear communication"],
  "areas_for_improvement": ["Add concrete examples"],
  "recommendations": ["Use the STAR structure"],
  "feedback": "A solid answer that would benefit from specific examples."
}`
