package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	TopBar    lipgloss.Style
	Footer    lipgloss.Style
	InputBox  lipgloss.Style
	Spinner   lipgloss.Style
	Status    lipgloss.Style
	RoleYou   lipgloss.Style
	RoleAI    lipgloss.Style
	RoleErr   lipgloss.Style
	Timing    lipgloss.Style
	FieldName lipgloss.Style
}

func NewTheme() Theme {
	accent := lipgloss.Color("#7C3AED")
	muted := lipgloss.Color("#6B7280")
	return Theme{
		TopBar: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).Padding(0, 1),
		Footer:    lipgloss.NewStyle().Foreground(muted),
		InputBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Spinner:   lipgloss.NewStyle().Foreground(accent),
		Status:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		RoleYou:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E")),
		RoleAI:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		RoleErr:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		Timing:    lipgloss.NewStyle().Foreground(muted),
		FieldName: lipgloss.NewStyle().Foreground(muted),
	}
}

// sectionStyle returns the card border color and icon for a section kind.
func sectionStyle(kind string) (lipgloss.Color, string) {
	switch kind {
	case "hook":
		return lipgloss.Color("#EF4444"), "🎣"
	case "context":
		return lipgloss.Color("#3B82F6"), "📍"
	case "content":
		return lipgloss.Color("#22C55E"), "💡"
	case "climax":
		return lipgloss.Color("#A855F7"), "⚡"
	case "cta":
		return lipgloss.Color("#EAB308"), "🎯"
	case "caption":
		return lipgloss.Color("#EC4899"), "📝"
	}
	return lipgloss.Color("#6B7280"), "📋"
}
