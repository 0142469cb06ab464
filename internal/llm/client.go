package llm

import (
	"context"

	"cleverai/api/internal/models"
)

// Client produces a single completion for an ordered conversation.
type Client interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// ProviderError carries the upstream provider's message when one is available.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return "llm provider: " + e.Message
	}
	return "llm provider: " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
