package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
	StatusSkipped lipgloss.Style
}

// NewStyles builds styles on the given lipgloss renderer. Without color the
// styles are plain, so output contains no escape codes at all.
func NewStyles(lr *lipgloss.Renderer, color bool) *Styles {
	if !color {
		plain := lr.NewStyle()
		return &Styles{
			Header1:       plain,
			Header2:       plain,
			Bold:          plain,
			Muted:         plain,
			Path:          plain,
			Success:       plain,
			Warning:       plain,
			Error:         plain,
			StatusSuccess: plain.SetString("✓"),
			StatusFailed:  plain.SetString("✗"),
			StatusSkipped: plain.SetString("-"),
		}
	}

	green := lipgloss.Color("10")
	yellow := lipgloss.Color("11")
	red := lipgloss.Color("9")
	blue := lipgloss.Color("12")
	gray := lipgloss.Color("8")

	return &Styles{
		Header1:       lr.NewStyle().Bold(true).Foreground(blue),
		Header2:       lr.NewStyle().Bold(true),
		Bold:          lr.NewStyle().Bold(true),
		Muted:         lr.NewStyle().Foreground(gray),
		Path:          lr.NewStyle().Foreground(blue),
		Success:       lr.NewStyle().Foreground(green),
		Warning:       lr.NewStyle().Foreground(yellow),
		Error:         lr.NewStyle().Foreground(red),
		StatusSuccess: lr.NewStyle().Foreground(green).SetString("✓"),
		StatusFailed:  lr.NewStyle().Foreground(red).SetString("✗"),
		StatusSkipped: lr.NewStyle().Foreground(gray).SetString("-"),
	}
}
