package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/plantpal/backend/internal/model/conversation"
)

type fakeChatModel struct {
	received []*schema.Message
	reply    string
	err      error
}

func (f *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.received = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported in fake")
}

func (f *fakeChatModel) BindTools(tools []*schema.ToolInfo) error { return nil }

func TestGenerateReplyReplaysTranscript(t *testing.T) {
	fake := &fakeChatModel{reply: "  I'm doing great!  "}
	svc := NewServiceWithModel(fake, time.Second)

	transcript := []conversation.Message{
		{Role: conversation.RoleSystem, Content: "You are Sol."},
		{Role: conversation.RoleUser, Content: "hello"},
		{Role: conversation.RoleAssistant, Content: "hi there"},
	}

	reply, err := svc.GenerateReply(context.Background(), transcript, "How are you?")
	if err != nil {
		t.Fatalf("GenerateReply err: %v", err)
	}
	if reply != "I'm doing great!" {
		t.Fatalf("reply = %q, want trimmed text", reply)
	}

	if len(fake.received) != 4 {
		t.Fatalf("model received %d messages, want 4", len(fake.received))
	}
	if fake.received[0].Role != schema.System {
		t.Fatalf("first replayed role = %s, want system", fake.received[0].Role)
	}
	if fake.received[3].Role != schema.User || fake.received[3].Content != "How are you?" {
		t.Fatalf("last message must be the new user turn, got %+v", fake.received[3])
	}
}

func TestGenerateReplyFailure(t *testing.T) {
	fake := &fakeChatModel{err: errors.New("provider down")}
	svc := NewServiceWithModel(fake, time.Second)

	if _, err := svc.GenerateReply(context.Background(), nil, "hi"); err == nil {
		t.Fatal("expected error from failing model")
	}
}

func TestGenerateReplyEmpty(t *testing.T) {
	fake := &fakeChatModel{reply: "   "}
	svc := NewServiceWithModel(fake, time.Second)

	if _, err := svc.GenerateReply(context.Background(), nil, "hi"); err == nil {
		t.Fatal("expected error for empty model reply")
	}
}
