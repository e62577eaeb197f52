package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/plantpal/backend/internal/config"
	"github.com/plantpal/backend/internal/model/conversation"
)

// Service generates plant replies by replaying the full transcript to the
// chat model on every turn.
type Service struct {
	chatModel model.ChatModel
	timeout   time.Duration
}

// NewService creates the Ark-backed AI service.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return NewServiceWithModel(chatModel, time.Duration(cfg.Timeout)*time.Second), nil
}

// NewServiceWithModel wraps an existing chat model. Useful anywhere the
// model is constructed elsewhere, including tests.
func NewServiceWithModel(chatModel model.ChatModel, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{chatModel: chatModel, timeout: timeout}
}

// GenerateReply runs one completion over the ordered transcript plus the new
// user message and returns the trimmed assistant text.
func (s *Service) GenerateReply(ctx context.Context, transcript []conversation.Message, userMessage string) (string, error) {
	input := make([]*schema.Message, 0, len(transcript)+1)
	for _, msg := range transcript {
		switch msg.Role {
		case conversation.RoleSystem:
			input = append(input, schema.SystemMessage(msg.Content))
		case conversation.RoleUser:
			input = append(input, schema.UserMessage(msg.Content))
		case conversation.RoleAssistant:
			input = append(input, schema.AssistantMessage(msg.Content, nil))
		}
	}
	input = append(input, schema.UserMessage(userMessage))

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.chatModel.Generate(callCtx, input)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	reply := strings.TrimSpace(response.Content)
	if reply == "" {
		return "", fmt.Errorf("chat model returned an empty reply")
	}

	log.Printf("[ai] generated reply, transcript=%d chars=%d", len(input), len(reply))
	return reply, nil
}
