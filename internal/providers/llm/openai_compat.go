package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const interviewerSystemPrompt = "You are an expert technical interviewer providing detailed, constructive feedback. Always answer with the exact JSON the user asks for and nothing else."

// OpenAICompat talks to any OpenAI-compatible chat completion endpoint.
// Pointing BaseURL at https://api.groq.com/openai/v1 gives the Groq-hosted
// llama models.
type OpenAICompat struct {
	client openai.Client
	model  string
}

func NewOpenAICompat(apiKey, baseURL, model string) *OpenAICompat {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &OpenAICompat{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (o *OpenAICompat) Close() error { return nil }

func (o *OpenAICompat) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(interviewerSystemPrompt),
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(o.model),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return completion.Choices[0].Message.Content, nil
}
