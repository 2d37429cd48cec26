// Package chatpanel renders the compliance chat screen: agent header,
// scrollable transcript, loading line, input box and disclaimer footer.
package chatpanel

import (
	"strings"

	"legalflow/pkg/chat"
	"legalflow/pkg/regulation"
	"legalflow/pkg/ui/components/utils"
	"legalflow/pkg/ui/styles"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	borderSize   = 1
	paddingH     = 1
	inputHeight  = 3
	chromeHeight = 4 // title + loading + separator + footer
	pageSize     = 10
	footerHint   = "Enter Send | Up/Down Scroll | Ctrl+N New Session | Ctrl+Y Copy | Esc Back"
)

// SubmitMsg is returned when the user presses Enter on a non-blank input.
type SubmitMsg struct {
	Content string
}

// Panel is the chat screen component.
type Panel struct {
	width   int
	height  int
	scrollY int
	follow  bool
	lines   []string

	messages []chat.Message
	markdown markdownRenderer
	textarea textarea.Model
	awaiting bool
	loading  string
}

// New creates a panel with a focused input.
func New() *Panel {
	ta := textarea.New()
	ta.Placeholder = regulation.Placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.Focus()

	return &Panel{
		textarea: ta,
		follow:   true,
	}
}

// SetSize sets the outer dimensions of the panel, border included.
func (p *Panel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.textarea.SetWidth(p.contentWidth())
	p.reflow()
}

// SetMessages replaces the transcript shown in the viewport.
func (p *Panel) SetMessages(messages []chat.Message) {
	p.messages = append(p.messages[:0], messages...)
	if len(p.messages) == 0 {
		p.scrollY = 0
		p.follow = true
	}
	p.reflow()
}

// SetLoading shows text on the loading line. While awaiting, Enter is ignored.
func (p *Panel) SetLoading(text string, awaiting bool) {
	p.loading = text
	p.awaiting = awaiting
}

// Awaiting reports whether the panel is waiting on a reply.
func (p *Panel) Awaiting() bool {
	return p.awaiting
}

// Input returns the current input text.
func (p *Panel) Input() string {
	return p.textarea.Value()
}

// SetInput replaces the input text.
func (p *Panel) SetInput(text string) {
	p.textarea.SetValue(text)
}

// ClearInput empties the input box.
func (p *Panel) ClearInput() {
	p.textarea.Reset()
}

// Focus focuses the input box.
func (p *Panel) Focus() tea.Cmd {
	return p.textarea.Focus()
}

// Blur removes focus from the input box.
func (p *Panel) Blur() {
	p.textarea.Blur()
}

// HandlePaste inserts pasted text at the cursor.
func (p *Panel) HandlePaste(content string) {
	p.textarea.InsertString(content)
}

// Update handles a key press aimed at the chat screen.
func (p *Panel) Update(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if p.awaiting {
			return nil
		}
		content := p.textarea.Value()
		if strings.TrimSpace(content) == "" {
			return nil
		}
		return func() tea.Msg {
			return SubmitMsg{Content: content}
		}
	case "shift+enter", "alt+enter", "ctrl+j":
		p.textarea.InsertString("\n")
		return nil
	case "up", "down", "pgup", "pgdown", "home", "end":
		p.handleScroll(msg.String())
		return nil
	}

	var cmd tea.Cmd
	p.textarea, cmd = p.textarea.Update(msg)
	return cmd
}

func (p *Panel) handleScroll(key string) {
	maxScroll := p.maxScroll()

	switch key {
	case "up":
		if p.scrollY > 0 {
			p.scrollY--
			p.follow = false
		}
	case "down":
		if p.scrollY < maxScroll {
			p.scrollY++
		}
	case "pgup":
		p.scrollY -= pageSize
		if p.scrollY < 0 {
			p.scrollY = 0
		}
		p.follow = false
	case "pgdown":
		p.scrollY += pageSize
		if p.scrollY > maxScroll {
			p.scrollY = maxScroll
		}
	case "home":
		p.scrollY = 0
		p.follow = false
	case "end":
		p.scrollY = maxScroll
	}
	if key != "up" && key != "pgup" && key != "home" {
		p.follow = p.scrollY >= maxScroll
	}
}

// View renders the panel at its configured size.
func (p *Panel) View() string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}

	contentWidth := p.contentWidth()
	contentHeight := p.contentHeight()
	viewportHeight := p.viewportHeight()

	lines := make([]string, 0, contentHeight)
	lines = append(lines, utils.PadStyled(p.header(contentWidth), contentWidth))

	if len(p.messages) == 0 {
		lines = append(lines, p.emptyState(contentWidth, viewportHeight)...)
	} else {
		start := p.scrollY
		end := min(start+viewportHeight, len(p.lines))
		for i := start; i < end; i++ {
			lines = append(lines, utils.PadStyled(p.lines[i], contentWidth))
		}
	}
	for len(lines) < 1+viewportHeight {
		lines = append(lines, strings.Repeat(" ", contentWidth))
	}

	loading := ""
	if p.loading != "" {
		loading = styles.LoadingStyle.Render(utils.TruncateToWidth(p.loading, contentWidth))
	}
	lines = append(lines, utils.PadStyled(loading, contentWidth))
	lines = append(lines, styles.SeparatorStyle.Render(strings.Repeat("─", contentWidth)))

	p.textarea.SetWidth(contentWidth)
	inputLines := strings.Split(p.textarea.View(), "\n")
	for i := 0; i < inputHeight; i++ {
		line := ""
		if i < len(inputLines) {
			line = inputLines[i]
		}
		lines = append(lines, utils.PadStyled(line, contentWidth))
	}

	footer := regulation.Disclaimer + " | " + footerHint
	lines = append(lines, utils.PadStyled(styles.FooterStyle.Render(utils.TruncateToWidth(footer, contentWidth)), contentWidth))

	if len(lines) > contentHeight {
		lines = lines[len(lines)-contentHeight:]
	}

	return styles.BoxStyle.
		Width(max(p.width, 1)).
		Padding(0, paddingH).
		Render(strings.Join(lines, "\n"))
}

func (p *Panel) header(width int) string {
	title := styles.OnlineDotStyle.Render("●") + " " +
		styles.TitleStyle.Render(regulation.AgentTitle) + " " +
		styles.BetaStyle.Render("BETA")
	return ansi.Truncate(title, width, "…")
}

func (p *Panel) emptyState(width, height int) []string {
	text := utils.WrapWords(regulation.EmptyState, width)
	top := (height - len(text)) / 2
	var out []string
	for i := 0; i < top; i++ {
		out = append(out, "")
	}
	for _, l := range text {
		out = append(out, utils.CenterStyled(styles.TextMutedStyle.Render(l), width))
	}
	return out
}

func (p *Panel) reflow() {
	width := p.contentWidth()
	p.lines = p.renderTranscript(width)
	if p.follow || p.scrollY > p.maxScroll() {
		p.scrollY = p.maxScroll()
	}
	if p.scrollY < 0 {
		p.scrollY = 0
	}
}

// renderTranscript lays the messages out one after another, labelling the
// assistant's replies and separating exchanges with a rule. Only replies are
// treated as markdown.
func (p *Panel) renderTranscript(width int) []string {
	var lines []string
	for i, msg := range p.messages {
		if i > 0 {
			lines = append(lines, "")
		}
		switch msg.Role {
		case chat.RoleUser:
			if i > 0 {
				lines = append(lines, styles.SeparatorStyle.Render(strings.Repeat("─", width)), "")
			}
			lines = append(lines, styles.TextBoldStyle.Render("You"))
			for _, l := range plainLines(sanitizeContent(msg.Content), width) {
				lines = append(lines, styles.TextStyle.Render(l))
			}
		default:
			lines = append(lines, styles.AnswerLabelStyle.Render(utils.TruncateToWidth("✦ "+regulation.AnswerLabel, width)))
			lines = append(lines, p.markdown.Render(msg.Content, width)...)
		}
	}
	return lines
}

func (p *Panel) contentWidth() int {
	return max(p.width-2*(borderSize+paddingH), 1)
}

func (p *Panel) contentHeight() int {
	return max(p.height-2*borderSize, 1)
}

func (p *Panel) viewportHeight() int {
	return max(p.contentHeight()-chromeHeight-inputHeight, 1)
}

func (p *Panel) maxScroll() int {
	return max(len(p.lines)-p.viewportHeight(), 0)
}
