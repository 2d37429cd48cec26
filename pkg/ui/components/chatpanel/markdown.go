package chatpanel

import (
	"log/slog"
	"strings"
	"unicode"

	"legalflow/pkg/ui/components/utils"

	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/x/ansi"
)

const (
	headingColor = "#C9A227"
	strongColor  = "15"
)

// markdownRenderer renders assistant replies with glamour. The underlying
// renderer is rebuilt only when the wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// Render returns content as terminal lines no wider than width.
func (m *markdownRenderer) Render(content string, width int) []string {
	width = max(width, 1)
	content = sanitizeContent(content)
	if strings.TrimSpace(content) == "" {
		return []string{""}
	}

	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(markdownStyle()),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			slog.Warn("markdown_renderer_error", "error", err, "width", width)
			return plainLines(content, width)
		}
		m.renderer = r
		m.width = width
	}

	out, err := m.renderer.Render(content)
	if err != nil {
		slog.Warn("markdown_render_error", "error", err)
		return plainLines(content, width)
	}
	return fitLines(out, width)
}

// markdownStyle is glamour's dark theme without the document margin and with
// plain gold headings.
func markdownStyle() gansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	var noMargin uint
	cfg.Document.Margin = &noMargin
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""

	gold := headingColor
	bold := true
	for _, h := range []*gansi.StyleBlock{&cfg.Heading, &cfg.H1, &cfg.H2, &cfg.H3, &cfg.H4, &cfg.H5, &cfg.H6} {
		h.Prefix = ""
		h.Suffix = ""
		h.BackgroundColor = nil
		h.Color = &gold
		h.Bold = &bold
	}

	bright := strongColor
	cfg.Strong.Color = &bright
	return cfg
}

// fitLines drops the blank lines glamour puts around the document and clips
// every line to width.
func fitLines(rendered string, width int) []string {
	raw := strings.Split(strings.ReplaceAll(rendered, "\r\n", "\n"), "\n")

	start, end := 0, len(raw)
	for start < end && isBlank(raw[start]) {
		start++
	}
	for end > start && isBlank(raw[end-1]) {
		end--
	}
	if start == end {
		return []string{""}
	}

	lines := make([]string, 0, end-start)
	for _, line := range raw[start:end] {
		if ansi.StringWidth(line) > width {
			line = ansi.Truncate(line, width, "")
		}
		lines = append(lines, line)
	}
	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(ansi.Strip(line)) == ""
}

// plainLines wraps text paragraph by paragraph. User messages always take
// this path; replies fall back to it if glamour fails.
func plainLines(content string, width int) []string {
	var lines []string
	for _, para := range strings.Split(content, "\n") {
		if strings.TrimSpace(para) == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, utils.WrapWords(para, width)...)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// sanitizeContent normalises line endings and tabs and drops control
// characters, escape sequences included.
func sanitizeContent(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\t", "    ")
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, content)
}
