package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Prompter asks the user for confirmation before destructive operations.
type Prompter interface {
	// Confirm requires the user to type a specific expected value
	Confirm(message string, expectedValue string) (bool, error)
}

// TypedConfirmPrompter runs an interactive text-input prompt.
type TypedConfirmPrompter struct{}

func NewTypedConfirmPrompter() *TypedConfirmPrompter {
	return &TypedConfirmPrompter{}
}

func (p *TypedConfirmPrompter) Confirm(message string, expectedValue string) (bool, error) {
	if expectedValue == "" {
		return false, fmt.Errorf("expected confirmation value cannot be empty")
	}

	final, err := tea.NewProgram(newConfirmModel(message, expectedValue)).Run()
	if err != nil {
		return false, fmt.Errorf("running confirmation prompt: %w", err)
	}

	m, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected prompt model type %T", final)
	}
	return m.confirmed, nil
}

var (
	messageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

type confirmModel struct {
	input     textinput.Model
	message   string
	expected  string
	confirmed bool
	quitting  bool
}

func newConfirmModel(message, expected string) confirmModel {
	ti := textinput.New()
	ti.Placeholder = expected
	ti.CharLimit = 128
	ti.Width = 40
	ti.Focus()

	return confirmModel{
		input:    ti,
		message:  message,
		expected: expected,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.confirmed = strings.TrimSpace(m.input.Value()) == m.expected
			m.quitting = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n%s\n",
		messageStyle.Render(m.message),
		hintStyle.Render(fmt.Sprintf("Type %q to confirm, Esc to abort.", m.expected)),
		m.input.View(),
	)
}
