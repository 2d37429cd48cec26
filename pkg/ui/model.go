// Package ui is the Bubble Tea program behind the interactive terminal client.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"legalflow/pkg/chat"
	"legalflow/pkg/compliance"
	"legalflow/pkg/ui/components/chatpanel"
	"legalflow/pkg/ui/components/landing"
	"legalflow/pkg/ui/components/statusbar"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const statusMessageTTL = 3 * time.Second

type screen int

const (
	screenLanding screen = iota
	screenChat
)

// ThreadStore persists the thread identifier between runs.
type ThreadStore interface {
	Save(id string) error
}

// Options configures a Model.
type Options struct {
	Sender   chat.Sender
	Store    ThreadStore
	ThreadID string
	Endpoint string

	// Clipboard receives OSC 52 sequences. Nil disables copying.
	Clipboard io.Writer

	// StartInChat skips the landing screen.
	StartInChat bool
}

// Model represents the Bubble Tea application state
type Model struct {
	sender    chat.Sender
	store     ThreadStore
	conv      *chat.Conversation
	clipboard io.Writer

	// UI Components
	screen    screen
	panel     *chatpanel.Panel
	statusBar *statusbar.StatusBarView
	spinner   spinner.Model

	// In-flight request bookkeeping. seq identifies the pending exchange so
	// replies that arrive after a reset are dropped.
	seq         int
	loadingStep int
	cancel      context.CancelFunc
	statusSeq   int

	// UI state
	width  int
	height int
	ready  bool
}

// Message types

type replyMsg struct {
	seq   int
	reply chat.Reply
}

type loadingTickMsg struct {
	seq int
}

type clearStatusMsg struct {
	seq int
}

// NewModel creates a new Bubble Tea model
func NewModel(opts Options) Model {
	statusBar := statusbar.NewStatusBarView()
	statusBar.SetEndpoint(opts.Endpoint)
	statusBar.SetThread(opts.ThreadID)

	m := Model{
		sender:    opts.Sender,
		store:     opts.Store,
		conv:      chat.NewConversation(opts.ThreadID),
		clipboard: opts.Clipboard,
		panel:     chatpanel.New(),
		statusBar: statusBar,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if opts.StartInChat {
		m.screen = screenChat
	}
	return m
}

// Init initializes the model (Bubble Tea lifecycle method)
func (m Model) Init() tea.Cmd {
	if m.screen == screenChat {
		return m.panel.Focus()
	}
	return nil
}

// Update handles messages and updates model state (Bubble Tea lifecycle method)
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Leave room for the status bar under the chat panel.
		m.panel.SetSize(msg.Width, msg.Height-1)
		m.statusBar.SetWidth(msg.Width)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.PasteMsg:
		if m.screen == screenChat {
			m.panel.HandlePaste(msg.Content)
		}
		return m, nil

	case chatpanel.SubmitMsg:
		return m.submit(msg.Content)

	case replyMsg:
		return m.handleReply(msg)

	case loadingTickMsg:
		if msg.seq != m.seq || !m.conv.Awaiting() {
			return m, nil
		}
		m.loadingStep++
		m.syncLoading()
		return m, loadingTick(m.seq)

	case spinner.TickMsg:
		if !m.conv.Awaiting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncLoading()
		return m, cmd

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusBar.SetMessage("")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.cancelPending()
		return m, tea.Quit
	}

	if m.screen == screenLanding {
		switch msg.String() {
		case "enter":
			m.screen = screenChat
			slog.Debug("screen_chat_open", "thread_id", m.conv.ThreadID())
			return m, m.panel.Focus()
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.screen = screenLanding
		m.panel.Blur()
		return m, nil
	case "ctrl+n":
		return m.newSession()
	case "ctrl+y":
		return m.copyLastAnswer()
	}

	return m, m.panel.Update(msg)
}

func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	content, ok := m.conv.Submit(input)
	if !ok {
		return m, nil
	}

	m.panel.ClearInput()
	m.seq++
	m.loadingStep = 0

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.sync()

	slog.Info("chat_submit", "thread_id", m.conv.ThreadID(), "message_len", len(content))
	return m, tea.Batch(
		sendMessage(ctx, m.sender, m.seq, m.conv.ThreadID(), content),
		loadingTick(m.seq),
		m.spinner.Tick,
	)
}

func (m Model) handleReply(msg replyMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || !m.conv.Awaiting() {
		slog.Debug("chat_reply_discarded", "seq", msg.seq, "current_seq", m.seq)
		return m, nil
	}
	m.cancelPending()

	threadChanged := m.conv.Apply(msg.reply)
	if threadChanged && m.store != nil {
		if err := m.store.Save(m.conv.ThreadID()); err != nil {
			slog.Error("thread_id_persist_error", "error", err)
		}
	}
	m.sync()

	if msg.reply.Err != nil {
		m.statusBar.SetError(statusError(msg.reply.Err))
		return m, nil
	}
	m.statusBar.SetMessage("")
	return m, nil
}

func (m Model) newSession() (tea.Model, tea.Cmd) {
	m.cancelPending()
	// Bump seq so a reply still in flight is ignored.
	m.seq++
	m.conv.Reset()
	m.panel.ClearInput()
	m.sync()
	slog.Info("chat_new_session", "thread_id", m.conv.ThreadID())
	return m.flash("New session started")
}

func (m Model) copyLastAnswer() (tea.Model, tea.Cmd) {
	text, ok := m.conv.LastAssistantMessage()
	if !ok {
		return m.flash("Nothing to copy yet")
	}
	if m.clipboard == nil {
		return m.flash("Clipboard unavailable")
	}

	w := m.clipboard
	model, clearCmd := m.flash("Copied last answer")
	copyCmd := func() tea.Msg {
		if _, err := fmt.Fprint(w, osc52.New(text)); err != nil {
			slog.Warn("clipboard_write_error", "error", err)
		}
		return nil
	}
	return model, tea.Batch(copyCmd, clearCmd)
}

// flash shows msg in the status bar for a few seconds.
func (m Model) flash(msg string) (Model, tea.Cmd) {
	m.statusSeq++
	m.statusBar.SetMessage(msg)
	seq := m.statusSeq
	return m, tea.Tick(statusMessageTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) cancelPending() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// sync pushes conversation state into the components.
func (m *Model) sync() {
	m.panel.SetMessages(m.conv.Messages())
	m.statusBar.SetThread(m.conv.ThreadID())
	m.statusBar.SetState(m.conv.State().String())
	m.syncLoading()
}

func (m *Model) syncLoading() {
	if !m.conv.Awaiting() {
		m.panel.SetLoading("", false)
		return
	}
	m.panel.SetLoading(m.spinner.View()+" "+chat.LoadingStep(m.loadingStep), true)
}

// Render returns the screen content for the current state.
func (m Model) Render() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.screen == screenLanding {
		return landing.Render(m.width, m.height)
	}
	return m.panel.View() + "\n" + m.statusBar.Render()
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Conversation exposes the underlying conversation.
func (m Model) Conversation() *chat.Conversation {
	return m.conv
}

func sendMessage(ctx context.Context, sender chat.Sender, seq int, threadID, content string) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{seq: seq, reply: chat.Exchange(ctx, sender, threadID, content)}
	}
}

func loadingTick(seq int) tea.Cmd {
	return tea.Tick(chat.LoadingInterval, func(time.Time) tea.Msg {
		return loadingTickMsg{seq: seq}
	})
}

func statusError(err error) string {
	var rlErr *compliance.RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr.Detail
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timed out"
	}
	return "Connection error"
}
