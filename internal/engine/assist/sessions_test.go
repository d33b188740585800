package assist

import (
	"context"
	"sync"
	"testing"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
)

// resetSessions resets the singleton so each test gets a fresh database.
func resetSessions(t *testing.T) {
	t.Helper()
	engine.Init(engine.Config{DataDir: t.TempDir()})
	if sessionDB != nil {
		sessionDB.Close()
	}
	sessionDB = nil
	sessionErr = nil
	sessionOnce = sync.Once{}
	resumes.Range(func(key, _ any) bool {
		resumes.Delete(key)
		return true
	})
}

func TestAppendMessageAndHistory(t *testing.T) {
	resetSessions(t)
	ctx := context.Background()

	turns := []struct{ role, content string }{
		{"user", "find me a job"},
		{"assistant", "Please upload your resume first."},
		{"user", "tell me about Stripe"},
	}
	for _, turn := range turns {
		if err := AppendMessage(ctx, "s1", turn.role, turn.content); err != nil {
			t.Fatalf("AppendMessage error: %v", err)
		}
	}

	msgs, err := History(ctx, "s1", 0)
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	// Chronological order.
	if msgs[0].Content != "find me a job" || msgs[2].Content != "tell me about Stripe" {
		t.Errorf("messages out of order: %+v", msgs)
	}
	if msgs[1].Role != "assistant" {
		t.Errorf("role = %q, want assistant", msgs[1].Role)
	}
	if msgs[0].CreatedAt == "" {
		t.Error("created_at must be set")
	}
}

func TestHistory_SessionIsolation(t *testing.T) {
	resetSessions(t)
	ctx := context.Background()

	if err := AppendMessage(ctx, "a", "user", "hello from a"); err != nil {
		t.Fatalf("AppendMessage error: %v", err)
	}
	if err := AppendMessage(ctx, "b", "user", "hello from b"); err != nil {
		t.Fatalf("AppendMessage error: %v", err)
	}

	msgs, err := History(ctx, "a", 10)
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "hello from a" {
		t.Errorf("session a history = %+v", msgs)
	}
}

func TestHistory_Limit(t *testing.T) {
	resetSessions(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := AppendMessage(ctx, "", "user", "msg"); err != nil {
			t.Fatalf("AppendMessage error: %v", err)
		}
	}
	msgs, err := History(ctx, "", 2)
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("len = %d, want 2", len(msgs))
	}
}

func TestAppendMessage_InvalidRole(t *testing.T) {
	resetSessions(t)

	if err := AppendMessage(context.Background(), "s", "system", "nope"); err == nil {
		t.Error("expected error for invalid role")
	}
}

func TestResumePerSession(t *testing.T) {
	resetSessions(t)

	if _, ok := CurrentResume("s1"); ok {
		t.Error("expected no resume before upload")
	}

	record := &engine.ResumeRecord{Skills: []string{"Go"}, RawText: "x"}
	SetResume("s1", record)

	got, ok := CurrentResume("s1")
	if !ok || got != record {
		t.Errorf("CurrentResume = %v, %v", got, ok)
	}
	if _, ok := CurrentResume("s2"); ok {
		t.Error("resume must not leak across sessions")
	}

	// Empty session id maps to the default session.
	SetResume("", record)
	if _, ok := CurrentResume("default"); !ok {
		t.Error("empty session id should alias the default session")
	}
}
