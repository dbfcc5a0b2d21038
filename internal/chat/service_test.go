package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
)

type stubCompleter struct {
	got   []Message
	reply string
}

func (s *stubCompleter) Complete(ctx context.Context, messages []Message) (string, error) {
	s.got = messages
	return s.reply, nil
}

type stubLimiter struct {
	allowed bool
}

func (s *stubLimiter) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	return s.allowed, 1, nil
}

type stubSettings struct {
	values map[string]string
}

func (s *stubSettings) PublicSettings(ctx context.Context) (map[string]string, error) {
	return s.values, nil
}

func newChatService(t *testing.T, client *stubCompleter, allowed bool, values map[string]string) Service {
	t.Helper()
	svc, err := NewService(client, &stubLimiter{allowed: allowed}, &stubSettings{values: values})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAskPrependsSystemPromptAndHistory(t *testing.T) {
	t.Parallel()

	client := &stubCompleter{reply: "We have sizes 2-3y to 6-7y."}
	svc := newChatService(t, client, true, map[string]string{"store_name": "Luna Kids"})

	history := []Message{
		{Role: "user", Content: "Hi"},
		{Role: "assistant", Content: "Hello!"},
	}
	reply, err := svc.Ask(context.Background(), "sess-1", "What sizes do you have?", history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != client.reply {
		t.Fatalf("reply = %q", reply)
	}

	if len(client.got) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(client.got))
	}
	if client.got[0].Role != "system" || !strings.Contains(client.got[0].Content, "Luna Kids") {
		t.Fatalf("system prompt = %+v", client.got[0])
	}
	last := client.got[len(client.got)-1]
	if last.Role != "user" || last.Content != "What sizes do you have?" {
		t.Fatalf("last turn = %+v", last)
	}
}

func TestAskRejectsWhenRateLimited(t *testing.T) {
	t.Parallel()

	svc := newChatService(t, &stubCompleter{}, false, nil)
	_, err := svc.Ask(context.Background(), "sess-1", "hello", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit code, got %v", err)
	}
}

func TestAskValidatesInput(t *testing.T) {
	t.Parallel()

	svc := newChatService(t, &stubCompleter{}, true, nil)

	if _, err := svc.Ask(context.Background(), "", "hello", nil); err == nil {
		t.Fatal("expected error for missing session")
	}
	if _, err := svc.Ask(context.Background(), "sess-1", "  ", nil); err == nil {
		t.Fatal("expected error for empty message")
	}
	if _, err := svc.Ask(context.Background(), "sess-1", strings.Repeat("a", maxMessageChars+1), nil); err == nil {
		t.Fatal("expected error for oversized message")
	}
	if _, err := svc.Ask(context.Background(), "sess-1", "hi", []Message{{Role: "system", Content: "x"}}); err == nil {
		t.Fatal("expected error for forged system turn")
	}
}
