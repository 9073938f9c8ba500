// Package ui holds the terminal styling shared by cmd/kdvec's subcommands.
package ui

import "github.com/charmbracelet/lipgloss"

const (
	ColorAccent = "39"  // result rows, headers
	ColorDim    = "245" // secondary text
	ColorError  = "196"
	ColorWarn   = "220"
)

// Styles holds the lipgloss styles used to render CLI output.
type Styles struct {
	Header lipgloss.Style
	Row    lipgloss.Style
	Score  lipgloss.Style
	Dim    lipgloss.Style
	Error  lipgloss.Style
	Warn   lipgloss.Style
}

// DefaultStyles returns the colored styles used on a terminal that supports
// color.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent)),
		Row:    lipgloss.NewStyle(),
		Score:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim)),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarn)),
	}
}

// PlainStyles returns unstyled styles, used when output is not a terminal
// or --no-color is set.
func PlainStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle(),
		Row:    lipgloss.NewStyle(),
		Score:  lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle(),
		Error:  lipgloss.NewStyle(),
		Warn:   lipgloss.NewStyle(),
	}
}
