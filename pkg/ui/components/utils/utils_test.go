package utils

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := TruncateToWidth(tt.text, tt.width); got != tt.want {
			t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestCenterStyled(t *testing.T) {
	got := CenterStyled("abc", 9)
	if got != "   abc   " {
		t.Errorf("Expected centered text, got %q", got)
	}
	if CenterStyled("toolong", 3) != "toolong" {
		t.Error("Expected text wider than width to be returned unchanged")
	}
}

func TestWrapWords(t *testing.T) {
	lines := WrapWords("Validate your product features against Indonesian law", 20)
	for _, line := range lines {
		if runewidth.StringWidth(line) > 20 {
			t.Errorf("Line %q exceeds width 20", line)
		}
	}
	if strings.Join(lines, " ") != "Validate your product features against Indonesian law" {
		t.Errorf("Expected words preserved, got %q", lines)
	}
}

func TestWrapWords_LongWord(t *testing.T) {
	lines := WrapWords("supercalifragilistic", 5)
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "super" {
		t.Errorf("Expected first chunk 'super', got %q", lines[0])
	}
}

func TestWrapWords_Empty(t *testing.T) {
	lines := WrapWords("", 10)
	if len(lines) != 1 || lines[0] != "" {
		t.Errorf("Expected single empty line, got %q", lines)
	}
}
