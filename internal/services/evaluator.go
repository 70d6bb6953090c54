package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/yoointerview/internal/models"
	"github.com/yoockh/yoointerview/internal/providers/llm"
	"github.com/yoockh/yoointerview/internal/utils"
)

// EvaluatorService is the LLM-backed scoring oracle: it generates the
// question sequence at session start and scores each response. Output is
// parsed as strict JSON and fails closed on anything malformed; the model's
// text is never executed or interpreted beyond json.Unmarshal.
type EvaluatorService interface {
	GenerateQuestions(ctx context.Context, resume *models.ResumeData) ([]models.Question, error)
	EvaluateResponse(ctx context.Context, responseText string, q models.Question, resume *models.ResumeData) (models.Evaluation, error)
}

type llmEvaluator struct {
	llm           llm.Provider
	questionCount int
	log           *logrus.Logger
}

func NewLLMEvaluator(provider llm.Provider, questionCount int, log *logrus.Logger) EvaluatorService {
	if questionCount <= 0 {
		questionCount = 5
	}
	if log == nil {
		log = logrus.New()
	}
	return &llmEvaluator{llm: provider, questionCount: questionCount, log: log}
}

func (e *llmEvaluator) GenerateQuestions(ctx context.Context, resume *models.ResumeData) ([]models.Question, error) {
	const op = "Evaluator.GenerateQuestions"

	raw, err := e.complete(ctx, buildQuestionPrompt(resumeContext(resume), e.questionCount))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "llm call failed", err)
	}

	var payload []struct {
		Text             string   `json:"text"`
		Category         string   `json:"category"`
		Difficulty       string   `json:"difficulty"`
		ExpectedKeywords []string `json:"expected_keywords"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "malformed question output", utils.ErrQuestionGeneration)
	}

	questions := make([]models.Question, 0, len(payload))
	for _, p := range payload {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		questions = append(questions, models.Question{
			Text:             strings.TrimSpace(p.Text),
			Category:         strings.ToLower(strings.TrimSpace(p.Category)),
			Difficulty:       strings.ToLower(strings.TrimSpace(p.Difficulty)),
			ExpectedKeywords: p.ExpectedKeywords,
		})
	}

	if len(questions) == 0 {
		return nil, utils.E(utils.CodeInternal, op, "no parseable questions", utils.ErrQuestionGeneration)
	}
	return questions, nil
}

func (e *llmEvaluator) EvaluateResponse(ctx context.Context, responseText string, q models.Question, resume *models.ResumeData) (models.Evaluation, error) {
	const op = "Evaluator.EvaluateResponse"

	raw, err := e.complete(ctx, buildEvaluationPrompt(resumeContext(resume), q, responseText))
	if err != nil {
		return models.Evaluation{}, utils.E(utils.CodeUnavailable, op, "llm call failed", err)
	}

	var payload struct {
		Score               float64  `json:"score"`
		Strengths           []string `json:"strengths"`
		AreasForImprovement []string `json:"areas_for_improvement"`
		Recommendations     []string `json:"recommendations"`
		Feedback            string   `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		return models.Evaluation{}, utils.E(utils.CodeInternal, op, "malformed evaluation output", utils.ErrEvaluation)
	}

	return models.Evaluation{
		Score:               normalizeScore(payload.Score),
		Strengths:           emptyIfNil(payload.Strengths),
		AreasForImprovement: emptyIfNil(payload.AreasForImprovement),
		Recommendations:     emptyIfNil(payload.Recommendations),
		Feedback:            strings.TrimSpace(payload.Feedback),
	}, nil
}

func (e *llmEvaluator) complete(ctx context.Context, prompt string) (string, error) {
	var out string
	err := retry.Do(func() error {
		var err error
		out, err = e.llm.Complete(ctx, prompt)
		if err != nil && ctx.Err() != nil {
			return retry.Unrecoverable(err)
		}
		return err
	},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			e.log.WithError(err).WithField("attempt", n+1).Warn("llm call retrying")
		}),
	)
	return out, err
}

// normalizeScore accepts the canonical [0,1] float but tolerates models that
// answer on a 0-100 scale, then clamps.
func normalizeScore(v float64) float64 {
	if v > 1 && v <= 100 {
		v = v / 100
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func emptyIfNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// extractJSON pulls the JSON object or array out of a reply that may be
// wrapped in markdown fences or surrounding prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	endObj := strings.LastIndex(text, "}")
	startArr := strings.Index(text, "[")
	endArr := strings.LastIndex(text, "]")

	// Prefer whichever container opens first.
	switch {
	case startArr != -1 && endArr > startArr && (startObj == -1 || startArr < startObj):
		return text[startArr : endArr+1]
	case startObj != -1 && endObj > startObj:
		return text[startObj : endObj+1]
	default:
		return strings.TrimSpace(text)
	}
}
