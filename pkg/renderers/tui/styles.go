package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles applied to each part of the view.
type Styles struct {
	Heading    lipgloss.Style
	Message    lipgloss.Style
	Label      lipgloss.Style
	FieldError lipgloss.Style
	Success    lipgloss.Style
	Failure    lipgloss.Style
	Muted      lipgloss.Style
}

// DefaultStyles returns the colour scheme used when none is supplied.
func DefaultStyles() Styles {
	return Styles{
		Heading:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Message:    lipgloss.NewStyle().Italic(true),
		Label:      lipgloss.NewStyle().Bold(true),
		FieldError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:      lipgloss.NewStyle().Faint(true),
	}
}

// PlainStyles renders text without any ANSI sequences.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Heading:    plain,
		Message:    plain,
		Label:      plain,
		FieldError: plain,
		Success:    plain,
		Failure:    plain,
		Muted:      plain,
	}
}
