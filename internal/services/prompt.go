package services

import (
	"fmt"
	"strings"

	"github.com/yoockh/yoointerview/internal/models"
)

// resumeContext flattens the structured resume into the plain-text block the
// prompts embed. Sections with no data are omitted.
func resumeContext(r *models.ResumeData) string {
	if r == nil {
		return "No resume provided."
	}

	var parts []string

	if r.Contact.Name != "" || r.Contact.Email != "" || r.Contact.Location != "" {
		parts = append(parts, "Candidate: "+orDefault(r.Contact.Name, "Unknown"))
		parts = append(parts, "Email: "+orDefault(r.Contact.Email, "Not provided"))
		parts = append(parts, "Location: "+orDefault(r.Contact.Location, "Not provided"))
	}

	if len(r.Education) > 0 {
		parts = append(parts, "\nEducation:")
		for _, edu := range r.Education {
			parts = append(parts, fmt.Sprintf("- %s from %s (%s)", edu.Degree, edu.Institution, edu.Year))
		}
	}

	if len(r.Experience) > 0 {
		parts = append(parts, "\nExperience:")
		for _, exp := range r.Experience {
			parts = append(parts, fmt.Sprintf("- %s at %s", exp.Position, exp.Company))
			if exp.Duration != "" {
				parts = append(parts, "  Duration: "+exp.Duration)
			}
			if exp.Description != "" {
				parts = append(parts, "  Description: "+exp.Description)
			}
		}
	}

	if len(r.Skills) > 0 {
		parts = append(parts, "\nSkills:")
		parts = append(parts, strings.Join(r.Skills, ", "))
	}

	if len(parts) == 0 {
		return "No structured resume data available."
	}
	return strings.Join(parts, "\n")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func buildQuestionPrompt(resumeCtx string, count int) string {
	return fmt.Sprintf(`You are an expert technical interviewer preparing a mock interview.

Candidate's Resume:
%s

Generate exactly %d interview questions tailored to this candidate. Mix technical, behavioral, and experience questions and vary the difficulty.

Reply with a JSON array only, no prose and no markdown, where each element is:
{"text": string, "category": "technical"|"behavioral"|"experience", "difficulty": "easy"|"medium"|"hard", "expected_keywords": [string]}`, resumeCtx, count)
}

func buildEvaluationPrompt(resumeCtx string, q models.Question, response string) string {
	return fmt.Sprintf(`You are an expert technical interviewer. Based on the candidate's resume and interview response, provide a detailed evaluation.

Candidate's Resume:
%s

Interview Question (%s, %s):
%s

Candidate's Response:
%s

Evaluate technical accuracy, clarity, problem-solving approach, and relevance to the question.

Reply with a JSON object only, no prose and no markdown:
{"score": number between 0.0 and 1.0, "strengths": [string], "areas_for_improvement": [string], "recommendations": [string], "feedback": string}`,
		resumeCtx, q.Category, q.Difficulty, q.Text, response)
}
