package utils

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// TruncateToWidth truncates string to width with ellipsis
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 3 {
		return TrimToWidth(text, width)
	}
	return TrimToWidth(text, width-3) + "..."
}

// TrimToWidth trims string to width without ellipsis
func TrimToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	currentWidth := 0
	for _, r := range text {
		runeWidth := runewidth.RuneWidth(r)
		if currentWidth+runeWidth > width {
			break
		}
		sb.WriteRune(r)
		currentWidth += runeWidth
	}
	return sb.String()
}

// PadStyled pads text with spaces to width, accounting for style
func PadStyled(text string, width int) string {
	if width <= 0 {
		return text
	}
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return text + strings.Repeat(" ", width-textWidth)
}

// CenterStyled centers possibly styled text within width.
func CenterStyled(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if width <= 0 || textWidth >= width {
		return text
	}
	left := (width - textWidth) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-textWidth-left)
}

// WrapWords wraps plain text on word boundaries so no line exceeds width.
// Words longer than width are split.
func WrapWords(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var sb strings.Builder
	lineWidth := 0
	for _, word := range strings.Fields(text) {
		for runewidth.StringWidth(word) > width {
			if lineWidth > 0 {
				lines = append(lines, sb.String())
				sb.Reset()
				lineWidth = 0
			}
			head := TrimToWidth(word, width)
			if head == "" {
				head = string([]rune(word)[:1])
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		wordWidth := runewidth.StringWidth(word)
		if wordWidth == 0 {
			continue
		}
		if lineWidth > 0 && lineWidth+1+wordWidth > width {
			lines = append(lines, sb.String())
			sb.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			sb.WriteByte(' ')
			lineWidth++
		}
		sb.WriteString(word)
		lineWidth += wordWidth
	}
	if sb.Len() > 0 || len(lines) == 0 {
		lines = append(lines, sb.String())
	}
	return lines
}
