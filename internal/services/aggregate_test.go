package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yoockh/yoointerview/internal/models"
)

func TestMeanScores(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		out := meanScores(nil)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("simple mean", func(t *testing.T) {
		out := meanScores([]map[string]float64{
			{"volume": 0.4, "pitch": 0.6},
			{"volume": 0.8, "pitch": 0.2},
		})
		assert.InDelta(t, 0.6, out["volume"], 1e-9)
		assert.InDelta(t, 0.4, out["pitch"], 1e-9)
	})

	t.Run("missing field divides by total count", func(t *testing.T) {
		// a record without a field contributes zero to that field's sum
		// but still counts in the divisor
		out := meanScores([]map[string]float64{
			{"a": 1.0},
			{"b": 1.0},
		})
		assert.InDelta(t, 0.5, out["a"], 1e-9)
		assert.InDelta(t, 0.5, out["b"], 1e-9)
	})

	t.Run("nil set counts toward divisor", func(t *testing.T) {
		out := meanScores([]map[string]float64{
			{"a": 0.9},
			nil,
			{"a": 0.3},
		})
		assert.InDelta(t, 0.4, out["a"], 1e-9)
	})
}

func TestSummarizeEvaluations(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		out := summarizeEvaluations(nil)
		assert.Zero(t, out.Score)
		assert.Empty(t, out.Strengths)
		assert.NotNil(t, out.Strengths)
		assert.NotNil(t, out.AreasForImprovement)
		assert.NotNil(t, out.Recommendations)
	})

	t.Run("mean score and deduplicated unions", func(t *testing.T) {
		out := summarizeEvaluations([]models.Evaluation{
			{
				Score:               0.6,
				Strengths:           []string{"clear", "concise"},
				AreasForImprovement: []string{"depth"},
				Recommendations:     []string{"practice"},
			},
			{
				Score:               0.8,
				Strengths:           []string{"clear", "structured"},
				AreasForImprovement: []string{"depth", "pacing"},
				Recommendations:     []string{},
			},
		})
		assert.InDelta(t, 0.7, out.Score, 1e-9)
		assert.Equal(t, []string{"clear", "concise", "structured"}, out.Strengths)
		assert.Equal(t, []string{"depth", "pacing"}, out.AreasForImprovement)
		assert.Equal(t, []string{"practice"}, out.Recommendations)
	})

	t.Run("blank entries are dropped", func(t *testing.T) {
		out := summarizeEvaluations([]models.Evaluation{
			{Score: 1, Strengths: []string{"", "clear"}},
		})
		assert.Equal(t, []string{"clear"}, out.Strengths)
	})
}
