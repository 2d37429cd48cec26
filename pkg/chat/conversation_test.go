package chat

import (
	"context"
	"errors"
	"testing"

	"legalflow/pkg/compliance"
)

type fakeSender struct {
	resp      compliance.Response
	err       error
	gotMsg    string
	gotThread string
	calls     int
}

func (f *fakeSender) SendMessage(_ context.Context, message, threadID string) (compliance.Response, error) {
	f.calls++
	f.gotMsg = message
	f.gotThread = threadID
	return f.resp, f.err
}

func TestConversation_SubmitTrims(t *testing.T) {
	c := NewConversation("t1")

	content, ok := c.Submit("  Is biometric data personal data?  ")
	if !ok {
		t.Fatal("Expected submit to be accepted")
	}
	if content != "Is biometric data personal data?" {
		t.Errorf("Expected trimmed content, got %q", content)
	}
	if c.State() != StateAwaiting {
		t.Errorf("Expected state awaiting, got %s", c.State())
	}

	msgs := c.Messages()
	if len(msgs) != 1 || msgs[0].Role != RoleUser {
		t.Fatalf("Expected one user message, got %+v", msgs)
	}
}

func TestConversation_RejectsEmptyInput(t *testing.T) {
	c := NewConversation("t1")

	for _, input := range []string{"", "   ", "\n\t"} {
		if c.CanSubmit(input) {
			t.Errorf("Expected CanSubmit(%q) to be false", input)
		}
		if _, ok := c.Submit(input); ok {
			t.Errorf("Expected Submit(%q) to be rejected", input)
		}
	}
	if len(c.Messages()) != 0 {
		t.Errorf("Expected no messages, got %d", len(c.Messages()))
	}
	if c.State() != StateIdle {
		t.Errorf("Expected state idle, got %s", c.State())
	}
}

func TestConversation_RejectsWhileAwaiting(t *testing.T) {
	c := NewConversation("t1")
	c.Submit("first")

	if _, ok := c.Submit("second"); ok {
		t.Fatal("Expected submit to be rejected while awaiting")
	}
	if len(c.Messages()) != 1 {
		t.Errorf("Expected 1 message, got %d", len(c.Messages()))
	}
}

func TestConversation_ResolveUpdatesThread(t *testing.T) {
	c := NewConversation("t1")
	c.Submit("hello")

	changed := c.Resolve(compliance.Response{Response: "**Answer**", ThreadID: "t2"})
	if !changed {
		t.Error("Expected thread change to be reported")
	}
	if c.ThreadID() != "t2" {
		t.Errorf("Expected thread id 't2', got %q", c.ThreadID())
	}
	if c.State() != StateIdle {
		t.Errorf("Expected state idle, got %s", c.State())
	}

	last, ok := c.LastAssistantMessage()
	if !ok || last != "**Answer**" {
		t.Errorf("Expected assistant answer, got %q", last)
	}
}

func TestConversation_ResolveKeepsThread(t *testing.T) {
	tests := map[string]string{
		"empty": "",
		"same":  "t1",
	}
	for name, returned := range tests {
		t.Run(name, func(t *testing.T) {
			c := NewConversation("t1")
			c.Submit("hello")
			if c.Resolve(compliance.Response{Response: "ok", ThreadID: returned}) {
				t.Error("Expected no thread change")
			}
			if c.ThreadID() != "t1" {
				t.Errorf("Expected thread id 't1', got %q", c.ThreadID())
			}
		})
	}
}

func TestConversation_FailGenericMessage(t *testing.T) {
	c := NewConversation("t1")
	c.Submit("hello")

	c.Fail(&compliance.APIError{StatusCode: 500, Body: "boom"})

	if c.State() != StateFailed {
		t.Errorf("Expected state failed, got %s", c.State())
	}
	last, _ := c.LastAssistantMessage()
	if last != ConnectionErrorMessage {
		t.Errorf("Expected connection error message, got %q", last)
	}
	if !c.CanSubmit("retry") {
		t.Error("Expected submission to be allowed after failure")
	}
}

func TestConversation_FailRateLimitDetail(t *testing.T) {
	c := NewConversation("t1")
	c.Submit("hello")

	c.Fail(&compliance.RateLimitError{Detail: "Daily limit reached."})

	last, _ := c.LastAssistantMessage()
	if last != "⚠️ **Daily Limit**: Daily limit reached." {
		t.Errorf("Unexpected rate limit text %q", last)
	}
}

func TestConversation_Reset(t *testing.T) {
	c := NewConversation("t1")
	c.Submit("hello")
	c.Resolve(compliance.Response{Response: "hi", ThreadID: "t2"})

	c.Reset()

	if len(c.Messages()) != 0 {
		t.Errorf("Expected empty transcript, got %d", len(c.Messages()))
	}
	if c.ThreadID() != "t2" {
		t.Errorf("Expected thread id kept across reset, got %q", c.ThreadID())
	}
	if _, ok := c.LastAssistantMessage(); ok {
		t.Error("Expected no assistant message after reset")
	}
}

func TestExchange_AppliesReply(t *testing.T) {
	sender := &fakeSender{resp: compliance.Response{Response: "answer", ThreadID: "t9"}}
	c := NewConversation("t1")

	content, _ := c.Submit("question")
	reply := Exchange(context.Background(), sender, c.ThreadID(), content)

	if sender.gotMsg != "question" || sender.gotThread != "t1" {
		t.Errorf("Unexpected sender args %q %q", sender.gotMsg, sender.gotThread)
	}
	if !c.Apply(reply) {
		t.Error("Expected thread change")
	}
	if c.ThreadID() != "t9" {
		t.Errorf("Expected thread id 't9', got %q", c.ThreadID())
	}
}

func TestExchange_Error(t *testing.T) {
	sendErr := errors.New("dial tcp: connection refused")
	sender := &fakeSender{err: sendErr}
	c := NewConversation("t1")

	content, _ := c.Submit("question")
	reply := Exchange(context.Background(), sender, c.ThreadID(), content)

	if c.Apply(reply) {
		t.Error("Expected no thread change on error")
	}
	if !errors.Is(c.LastError(), sendErr) {
		t.Errorf("Expected last error to be recorded, got %v", c.LastError())
	}
	last, _ := c.LastAssistantMessage()
	if last != ConnectionErrorMessage {
		t.Errorf("Expected connection error message, got %q", last)
	}
}

func TestLoadingStep_Cycles(t *testing.T) {
	steps := LoadingSteps()
	if len(steps) != 4 {
		t.Fatalf("Expected 4 loading steps, got %d", len(steps))
	}
	if LoadingStep(0) != "Scanning UU ITE & PDP..." {
		t.Errorf("Unexpected first step %q", LoadingStep(0))
	}
	if LoadingStep(len(steps)) != LoadingStep(0) {
		t.Error("Expected loading steps to wrap around")
	}
}
