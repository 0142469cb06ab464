package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"cleverai/api/internal/llm"
	"cleverai/api/internal/models"
)

var ErrEmptyConversation = errors.New("messages must not be empty")

// ChatService relays a conversation to the completion provider. It keeps no
// conversation state and never retries.
type ChatService struct {
	client  llm.Client
	timeout time.Duration
	log     zerolog.Logger
}

func NewChatService(client llm.Client, timeout time.Duration, log zerolog.Logger) *ChatService {
	return &ChatService{
		client:  client,
		timeout: timeout,
		log:     log,
	}
}

func (s *ChatService) Complete(ctx context.Context, userID int64, messages []models.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", ErrEmptyConversation
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.client.Complete(ctx, messages)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Int("messages", len(messages)).Msg("chat completion failed")
		return "", err
	}

	s.log.Debug().
		Int64("user_id", userID).
		Int("messages", len(messages)).
		Dur("latency", time.Since(start)).
		Msg("chat completion")
	return text, nil
}
