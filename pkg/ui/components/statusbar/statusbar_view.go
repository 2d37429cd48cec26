package statusbar

import (
	"net/url"
	"strings"

	"legalflow/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

const (
	appLabel       = "[legalflow]"
	shortThreadLen = 8
)

// StatusBarView renders the one-line status bar under the chat screen.
type StatusBarView struct {
	threadID string
	endpoint string
	state    string
	message  string
	isError  bool
	width    int
}

// NewStatusBarView creates a new status bar view
func NewStatusBarView() *StatusBarView {
	return &StatusBarView{
		state: "idle",
		width: 80,
	}
}

// SetThread updates the thread identifier shown on the left.
func (s *StatusBarView) SetThread(id string) {
	s.threadID = strings.TrimSpace(id)
}

// SetEndpoint records the agent URL. Only its host is displayed.
func (s *StatusBarView) SetEndpoint(endpoint string) {
	s.endpoint = endpointHost(endpoint)
}

// SetState updates the conversation state label.
func (s *StatusBarView) SetState(state string) {
	s.state = strings.TrimSpace(state)
}

// SetMessage sets a temporary message that replaces the thread label.
func (s *StatusBarView) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError sets a temporary message rendered with the error style.
func (s *StatusBarView) SetError(msg string) {
	s.message = msg
	s.isError = msg != ""
}

// SetWidth updates the width for rendering
func (s *StatusBarView) SetWidth(width int) {
	s.width = width
}

// Render returns the styled status bar, exactly width cells wide.
func (s *StatusBarView) Render() string {
	if s.width <= 0 {
		return ""
	}

	left := s.message
	if left == "" {
		left = appLabel + " thread " + shortThread(s.threadID)
	} else {
		left = appLabel + " " + left
	}

	state := s.state
	if state == "" {
		state = "idle"
	}
	right := state
	if s.endpoint != "" {
		right = s.endpoint + " | " + state
	}

	// Padding(0, 1) takes one cell on each side.
	inner := max(s.width-2, 1)

	rightWidth := ansi.StringWidth(right)
	if rightWidth+1 >= inner {
		right = ""
		rightWidth = 0
	}
	maxLeft := inner - rightWidth
	if rightWidth > 0 {
		maxLeft--
	}
	if ansi.StringWidth(left) > maxLeft {
		left = ansi.Truncate(left, maxLeft, "...")
	}

	gap := inner - ansi.StringWidth(left) - rightWidth
	line := left + strings.Repeat(" ", max(gap, 0)) + right

	style := styles.StatusBarStyle
	if s.isError {
		style = styles.StatusBarErrorStyle
	}
	return style.Render(line)
}

func shortThread(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) <= shortThreadLen {
		return id
	}
	return id[:shortThreadLen]
}

func endpointHost(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}
