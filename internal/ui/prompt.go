package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Johannes-Berggren/publish/internal/models"
)

// maxPendingShown caps the file list under the prompt title.
const maxPendingShown = 8

// PromptModel asks for a commit message in a textarea.
type PromptModel struct {
	textarea  textarea.Model
	styles    Styles
	pending   []models.FileChange
	err       error
	submitted bool
	cancelled bool
}

// NewPromptModel returns a focused prompt. pending lists the changed files in
// the source repository that the publish commit will pick up.
func NewPromptModel(pending []models.FileChange, styles Styles) PromptModel {
	ta := textarea.New()
	ta.Placeholder = "Commit message..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(4)

	return PromptModel{
		textarea: ta,
		styles:   styles,
		pending:  pending,
	}
}

func (m PromptModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "ctrl+d":
			if m.Message() == "" {
				m.err = fmt.Errorf("commit message cannot be empty")
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.textarea.SetWidth(min(msg.Width-4, 100))
		}
	}

	m.err = nil
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m PromptModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.title()) + "\n\n")
	if len(m.pending) > 0 {
		b.WriteString(m.pendingView() + "\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.Failure.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n")
	}

	b.WriteString(m.textarea.View() + "\n\n")
	b.WriteString(m.styles.Muted.Render("ctrl+d: publish • esc: cancel"))

	return b.String()
}

func (m PromptModel) title() string {
	if len(m.pending) == 0 {
		return "Publish message"
	}
	staged := 0
	for _, f := range m.pending {
		if f.IsStaged {
			staged++
		}
	}
	return fmt.Sprintf("Publish message (%d changed file(s) in source, %d staged)", len(m.pending), staged)
}

func (m PromptModel) pendingView() string {
	var b strings.Builder
	for i, f := range m.pending {
		if i == maxPendingShown {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  ... and %d more", len(m.pending)-i)) + "\n")
			break
		}
		b.WriteString("  " + f.DisplayStatus() + " " + f.Path + "\n")
	}
	return b.String()
}

// Message is the trimmed text entered so far.
func (m PromptModel) Message() string {
	return strings.TrimSpace(m.textarea.Value())
}

// Submitted reports whether the user confirmed the message.
func (m PromptModel) Submitted() bool { return m.submitted }

// PromptMessage runs the prompt on in/out and returns the entered message.
// Cancelling returns an empty message.
func PromptMessage(in io.Reader, out io.Writer, pending []models.FileChange) (string, error) {
	p := tea.NewProgram(NewPromptModel(pending, NewStyles(out)), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	m, ok := final.(PromptModel)
	if !ok || !m.Submitted() {
		return "", nil
	}
	return m.Message(), nil
}
