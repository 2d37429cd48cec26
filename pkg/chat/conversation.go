// Package chat holds the UI-independent state of a compliance conversation:
// the transcript, whether a reply is pending, and the thread identifier.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"legalflow/pkg/compliance"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the transcript.
type Message struct {
	Role    Role
	Content string
}

// State is the submission state of a conversation.
type State int

const (
	StateIdle State = iota
	StateAwaiting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaiting:
		return "awaiting"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	ConnectionErrorMessage = "⚠️ **Connection Error**: Unable to connect to LegalFlow Agent. Please ensure your query is specific and try again."
	RateLimitPrefix        = "⚠️ **Daily Limit**: "
)

// Sender delivers one message to the compliance agent.
type Sender interface {
	SendMessage(ctx context.Context, message, threadID string) (compliance.Response, error)
}

// Reply is the outcome of one Exchange.
type Reply struct {
	Response compliance.Response
	Err      error
	Elapsed  time.Duration
}

// Exchange sends content on threadID and packages the result. It blocks for
// the duration of the request, so UIs run it off their event loop.
func Exchange(ctx context.Context, sender Sender, threadID, content string) Reply {
	start := time.Now()
	resp, err := sender.SendMessage(ctx, content, threadID)
	elapsed := time.Since(start)
	if err != nil {
		slog.Error("chat_send_error", "error", err, "thread_id", threadID, "elapsed", elapsed)
		return Reply{Err: err, Elapsed: elapsed}
	}
	slog.Info("chat_send_done", "thread_id", resp.ThreadID, "elapsed", elapsed, "response_len", len(resp.Response))
	return Reply{Response: resp, Elapsed: elapsed}
}

// Conversation is the append-only transcript plus its submission state.
type Conversation struct {
	messages []Message
	state    State
	threadID string
	lastErr  error
}

// NewConversation starts an empty conversation on threadID.
func NewConversation(threadID string) *Conversation {
	return &Conversation{threadID: threadID}
}

// Messages returns the transcript. Callers must not modify it.
func (c *Conversation) Messages() []Message {
	return c.messages
}

// State reports the current submission state.
func (c *Conversation) State() State {
	return c.state
}

// Awaiting reports whether a reply is pending.
func (c *Conversation) Awaiting() bool {
	return c.state == StateAwaiting
}

// ThreadID returns the current thread identifier.
func (c *Conversation) ThreadID() string {
	return c.threadID
}

// LastError returns the error of the most recent failed exchange.
func (c *Conversation) LastError() error {
	return c.lastErr
}

// CanSubmit reports whether input would be accepted by Submit.
func (c *Conversation) CanSubmit(input string) bool {
	return strings.TrimSpace(input) != "" && c.state != StateAwaiting
}

// Submit appends the trimmed input as a user message and starts awaiting a
// reply. Blank input, or input while a reply is pending, is rejected.
func (c *Conversation) Submit(input string) (string, bool) {
	if !c.CanSubmit(input) {
		return "", false
	}
	content := strings.TrimSpace(input)
	c.messages = append(c.messages, Message{Role: RoleUser, Content: content})
	c.state = StateAwaiting
	c.lastErr = nil
	return content, true
}

// Resolve appends the assistant reply and returns to idle. It reports true
// when the server handed back a new thread identifier.
func (c *Conversation) Resolve(resp compliance.Response) bool {
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: resp.Response})
	c.state = StateIdle

	if resp.ThreadID == "" || resp.ThreadID == c.threadID {
		return false
	}
	c.threadID = resp.ThreadID
	return true
}

// Fail appends the user-facing error message for err.
func (c *Conversation) Fail(err error) {
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: ErrorText(err)})
	c.state = StateFailed
	c.lastErr = err
}

// Apply resolves or fails the pending exchange from a Reply.
func (c *Conversation) Apply(reply Reply) (threadChanged bool) {
	if reply.Err != nil {
		c.Fail(reply.Err)
		return false
	}
	return c.Resolve(reply.Response)
}

// Reset clears the transcript for a new session. The thread identifier is
// kept, like a page reload.
func (c *Conversation) Reset() {
	c.messages = nil
	c.state = StateIdle
	c.lastErr = nil
}

// LastAssistantMessage returns the most recent assistant reply, if any.
func (c *Conversation) LastAssistantMessage() (string, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant {
			return c.messages[i].Content, true
		}
	}
	return "", false
}

// ErrorText maps an exchange error to the text shown in the transcript.
func ErrorText(err error) string {
	var rlErr *compliance.RateLimitError
	if errors.As(err, &rlErr) {
		return RateLimitPrefix + rlErr.Detail
	}
	return ConnectionErrorMessage
}
