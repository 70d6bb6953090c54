package llm

import "context"

// Provider is a minimal text-completion client. Question generation and
// response evaluation both go through it; implementations are long-lived and
// safe for concurrent use across sessions.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}
