package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style

	OK   lipgloss.Style
	Fail lipgloss.Style
	Warn lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		OK:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Fail: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Warn: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	}
}

// Badge renders the overall outcome of a probe.
func (t Theme) Badge(ok bool) string {
	if ok {
		return t.OK.Render("[OK]")
	}
	return t.Fail.Render("[FAIL]")
}

// Mark renders the outcome of a single check.
func (t Theme) Mark(ok bool) string {
	if ok {
		return t.OK.Render("✓")
	}
	return t.Fail.Render("✗")
}
