// Package landing renders the terminal landing screen: brand bar, hero copy,
// the call to action and the knowledge-base grid.
package landing

import (
	"strings"

	"legalflow/pkg/regulation"
	"legalflow/pkg/ui/components/utils"
	"legalflow/pkg/ui/styles"
	"legalflow/pkg/version"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	maxContentWidth = 96
	minCardWidth    = 28
	footerHint      = "Enter Start | q Quit"
)

// Render returns the landing screen sized to width x height.
func Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	contentWidth := width - 4
	if contentWidth > maxContentWidth {
		contentWidth = maxContentWidth
	}
	if contentWidth < 10 {
		contentWidth = width
	}

	var lines []string
	lines = append(lines, navBar(contentWidth))
	lines = append(lines, "")
	lines = append(lines, utils.CenterStyled(styles.BadgeStyle.Render(regulation.Badge), contentWidth))
	lines = append(lines, "")
	for _, l := range utils.WrapWords(regulation.Headline, contentWidth) {
		lines = append(lines, utils.CenterStyled(styles.HeadlineStyle.Render(l), contentWidth))
	}
	lines = append(lines, "")
	for _, l := range utils.WrapWords(regulation.Lead, min(contentWidth, 72)) {
		lines = append(lines, utils.CenterStyled(styles.TextStyle.Render(l), contentWidth))
	}
	lines = append(lines, "")
	lines = append(lines, utils.CenterStyled(styles.ButtonStyle.Render(regulation.CallToAction+"  ›"), contentWidth))
	lines = append(lines, utils.CenterStyled(styles.FooterStyle.Render("press Enter"), contentWidth))
	lines = append(lines, "")
	lines = append(lines, utils.CenterStyled(styles.TitleStyle.Render(strings.ToUpper(regulation.KnowledgeHdr)), contentWidth))
	lines = append(lines, utils.CenterStyled(styles.TextMutedStyle.Render(regulation.KnowledgeSub), contentWidth))
	lines = append(lines, strings.Split(knowledgeGrid(contentWidth), "\n")...)

	footer := utils.CenterStyled(styles.FooterStyle.Render(footerHint), contentWidth)

	// Drop grid rows from the bottom when the terminal is short.
	if len(lines)+1 > height {
		keep := height - 1
		if keep < 0 {
			keep = 0
		}
		lines = lines[:keep]
	}
	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, footer)

	body := strings.Join(lines, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func navBar(width int) string {
	left := styles.BrandStyle.Render("§ " + regulation.Brand)
	right := styles.OnlineDotStyle.Render("●") + styles.TextMutedStyle.Render(" AI Agent Active · "+version.Summary())
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// knowledgeGrid lays the regulations out in as many columns as fit, up to 3.
func knowledgeGrid(width int) string {
	columns := width / (minCardWidth + 1)
	if columns > 3 {
		columns = 3
	}
	if columns < 1 {
		columns = 1
	}
	cardWidth := (width - (columns - 1)) / columns

	kb := regulation.KnowledgeBase()
	var rows []string
	for i := 0; i < len(kb); i += columns {
		var cards []string
		for j := i; j < i+columns && j < len(kb); j++ {
			cards = append(cards, card(kb[j], cardWidth))
			if j < i+columns-1 && j < len(kb)-1 {
				cards = append(cards, " ")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func card(r regulation.Regulation, width int) string {
	// border (2) + horizontal padding (2)
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	var lines []string
	for _, l := range utils.WrapWords(r.Title, inner) {
		lines = append(lines, styles.CardTitleStyle.Render(l))
	}
	for _, l := range utils.WrapWords(r.Description, inner) {
		lines = append(lines, styles.TextMutedStyle.Render(l))
	}
	return styles.CardStyle.Width(width).Render(strings.Join(lines, "\n"))
}
