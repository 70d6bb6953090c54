package services

import "github.com/yoockh/yoointerview/internal/models"

// Session-level aggregation. Each numeric field is averaged independently
// across all records: the divisor is always the total record count, so a
// record missing a field neither drops the record from other fields nor
// shrinks the divisor. Empty input returns zero values, never an error.

func meanScores(sets []map[string]float64) map[string]float64 {
	out := map[string]float64{}
	if len(sets) == 0 {
		return out
	}

	for _, set := range sets {
		for k, v := range set {
			out[k] += v
		}
	}

	n := float64(len(sets))
	for k := range out {
		out[k] /= n
	}
	return out
}

// summarizeEvaluations averages the score and unions the list fields.
// First-seen order is kept so repeated summaries serialize identically.
func summarizeEvaluations(evals []models.Evaluation) models.EvaluationSummary {
	out := models.EvaluationSummary{
		Strengths:           []string{},
		AreasForImprovement: []string{},
		Recommendations:     []string{},
	}
	if len(evals) == 0 {
		return out
	}

	var total float64
	seenStrengths := map[string]struct{}{}
	seenAreas := map[string]struct{}{}
	seenRecs := map[string]struct{}{}

	for _, ev := range evals {
		total += ev.Score
		out.Strengths = appendUnique(out.Strengths, seenStrengths, ev.Strengths)
		out.AreasForImprovement = appendUnique(out.AreasForImprovement, seenAreas, ev.AreasForImprovement)
		out.Recommendations = appendUnique(out.Recommendations, seenRecs, ev.Recommendations)
	}

	out.Score = total / float64(len(evals))
	return out
}

func appendUnique(dst []string, seen map[string]struct{}, items []string) []string {
	for _, it := range items {
		if it == "" {
			continue
		}
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		dst = append(dst, it)
	}
	return dst
}

func faceScoreSets(records []models.ResponseRecord) []map[string]float64 {
	out := make([]map[string]float64, 0, len(records))
	for _, r := range records {
		out = append(out, r.FaceMetrics.Scores)
	}
	return out
}

func voiceScoreSets(records []models.ResponseRecord) []map[string]float64 {
	out := make([]map[string]float64, 0, len(records))
	for _, r := range records {
		out = append(out, r.VoiceMetrics.Scores)
	}
	return out
}

func evaluations(records []models.ResponseRecord) []models.Evaluation {
	out := make([]models.Evaluation, 0, len(records))
	for _, r := range records {
		out = append(out, r.Evaluation)
	}
	return out
}
