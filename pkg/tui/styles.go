package tui

import (
	"github.com/charmbracelet/lipgloss"

	"dealscope/prospector/pkg/prospect"
)

var (
	colorExcellent = lipgloss.Color("#8BC34A")
	colorGood      = lipgloss.Color("#2196F3")
	colorFair      = lipgloss.Color("#FFC107")
	colorLow       = lipgloss.Color("#9E9E9E")
	colorError     = lipgloss.Color("#e53935")
	colorBorder    = lipgloss.Color("#2a3850")
)

// Styles groups the lipgloss styles used by the browser.
type Styles struct {
	Title     lipgloss.Style
	Group     lipgloss.Style
	Card      lipgloss.Style
	CardLabel lipgloss.Style
	Detail    lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Checked   lipgloss.Style
	Cursor    lipgloss.Style
}

// DefaultStyles returns the default browser styles.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Group:     lipgloss.NewStyle().Bold(true),
		Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1),
		CardLabel: lipgloss.NewStyle().Faint(true),
		Detail:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(colorBorder),
		Label:     lipgloss.NewStyle().Width(28),
		Muted:     lipgloss.NewStyle().Faint(true),
		Error:     lipgloss.NewStyle().Foreground(colorError),
		Checked:   lipgloss.NewStyle().Foreground(colorExcellent),
		Cursor:    lipgloss.NewStyle().Bold(true),
	}
}

// TierStyle returns the colour for a score tier.
func TierStyle(t prospect.Tier) lipgloss.Style {
	switch t {
	case prospect.TierExcellent:
		return lipgloss.NewStyle().Foreground(colorExcellent).Bold(true)
	case prospect.TierGood:
		return lipgloss.NewStyle().Foreground(colorGood)
	case prospect.TierFair:
		return lipgloss.NewStyle().Foreground(colorFair)
	default:
		return lipgloss.NewStyle().Foreground(colorLow)
	}
}
