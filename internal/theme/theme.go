package theme

import (
	"fmt"

	"charm.land/lipgloss/v2"
)

type Theme struct {
	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

func New() Theme {
	return Theme{
		title: lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).MarginBottom(1),
		label: lipgloss.NewStyle().Foreground(ColorDim).Width(16),
		value: lipgloss.NewStyle().Foreground(ColorWhite),
		ok:    lipgloss.NewStyle().Foreground(ColorOK),
		warn:  lipgloss.NewStyle().Foreground(ColorWarn),
		err:   lipgloss.NewStyle().Foreground(ColorError),
	}
}

func (t Theme) Title(s string) string { return t.title.Render(s) }
func (t Theme) OK(s string) string    { return t.ok.Render(s) }
func (t Theme) Warn(s string) string  { return t.warn.Render(s) }
func (t Theme) Error(s string) string { return t.err.Render(s) }

// Row renders a left-aligned label followed by value.
func (t Theme) Row(label string, value any) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		t.label.Render(label),
		t.value.Render(fmt.Sprint(value)),
	)
}

// Rows stacks rows vertically under title.
func (t Theme) Rows(title string, rows ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{t.Title(title)}, rows...)...)
}
