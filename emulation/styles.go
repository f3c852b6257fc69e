package emulation

import "github.com/charmbracelet/lipgloss"

type styles struct {
	emulation lipgloss.Style
	cartridge lipgloss.Style
	serial    lipgloss.Style
	err       lipgloss.Style
}

func newStyles() styles {
	return styles{
		emulation: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(2)),
		cartridge: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		serial:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		err:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}
