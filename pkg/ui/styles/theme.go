// Package styles provides the LegalFlow palette and the shared lipgloss styles
// used by every terminal UI component.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette: warm brown primary with a gold accent, on neutral text.
var (
	ColorPrimary = lipgloss.Color("#795548")
	ColorGold    = lipgloss.Color("#C9A227")

	ColorText       = lipgloss.Color("252")
	ColorTextMuted  = lipgloss.Color("245")
	ColorTextBright = lipgloss.Color("15")

	ColorSuccess = lipgloss.Color("42")

	ColorBorder      = lipgloss.Color("#A1887F")
	ColorBorderMuted = lipgloss.Color("238")
)

// Panel/Box styles
var (
	// BoxStyle is the full-screen rounded frame of the chat screen
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	// CardStyle frames one knowledge-base entry on the landing screen
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderMuted).
			Padding(0, 1)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorGold).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Bold(true)
)

// Landing styles
var (
	BrandStyle = lipgloss.NewStyle().
			Foreground(ColorGold).
			Bold(true)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(ColorGold).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	HeadlineStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 2)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Bold(true)
)

// Chat styles
var (
	OnlineDotStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	BetaStyle = lipgloss.NewStyle().
			Foreground(ColorGold).
			Bold(true)

	AnswerLabelStyle = lipgloss.NewStyle().
				Foreground(ColorGold).
				Bold(true)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorGold).
			Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(ColorBorderMuted)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorPrimary).
			Padding(0, 1).
			Bold(true)

	StatusBarErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#8E2C2C")).
				Padding(0, 1).
				Bold(true)
)
