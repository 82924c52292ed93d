package tui

import (
	"strings"

	"getmybrief/internal/app"

	"github.com/charmbracelet/lipgloss"
)

// renderSections draws a completed script as modular section cards. The raw
// text stays the source of truth; this is only an alternate view.
func renderSections(theme Theme, sections []app.ScriptSection, width int) string {
	if width < 20 {
		width = 20
	}
	var cards []string
	for _, s := range sections {
		cards = append(cards, renderSectionCard(theme, s, width))
	}
	return strings.Join(cards, "\n")
}

func renderSectionCard(theme Theme, s app.ScriptSection, width int) string {
	color, icon := sectionStyle(s.Type.String())

	header := icon + " " + s.Title
	if s.Timing != "" {
		header += " " + theme.Timing.Render("["+s.Timing+"]")
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(header))
	if s.Visual != "" {
		lines = append(lines, theme.FieldName.Render("Visual: ")+s.Visual)
	}
	if s.Text != "" {
		lines = append(lines, theme.FieldName.Render("Text:   ")+s.Text)
	}
	if s.Audio != "" {
		lines = append(lines, theme.FieldName.Render("Audio:  ")+s.Audio)
	}
	if s.Visual == "" && s.Text == "" && s.Audio == "" {
		lines = append(lines, s.Raw)
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(width - 2)
	return card.Render(strings.Join(lines, "\n"))
}
