package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the lipgloss styles used for terminal output. They are bound
// to a renderer so color is dropped when the writer is not a terminal.
type Styles struct {
	Title   lipgloss.Style
	Step    lipgloss.Style
	Command lipgloss.Style
	Dir     lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Muted   lipgloss.Style
	Hash    lipgloss.Style
}

// NewStyles returns styles rendering for w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("170")),
		Step:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Command: r.NewStyle().Foreground(lipgloss.Color("252")),
		Dir:     r.NewStyle().Foreground(lipgloss.Color("12")),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("241")),
		Hash:    r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
