// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/styles"
)

// maxKeywordLength bounds the text of a keyword.
const maxKeywordLength = 200

// KeywordInput wraps a bubbles textinput for entering keyword text.
type KeywordInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewKeywordInput creates a new keyword input component.
func NewKeywordInput(s *styles.Styles) *KeywordInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Text to highlight (case-sensitive)"
	ti.CharLimit = maxKeywordLength
	ti.Width = 40

	return &KeywordInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (k *KeywordInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (k *KeywordInput) Update(msg tea.Msg) (*KeywordInput, tea.Cmd) {
	var cmd tea.Cmd
	k.textinput, cmd = k.textinput.Update(msg)
	return k, cmd
}

// View renders the input.
func (k *KeywordInput) View() string {
	label := k.styles.Title.Render("Keyword: ")
	field := k.styles.InputField.Render(k.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (k *KeywordInput) Value() string {
	return k.textinput.Value()
}

// SetValue sets the input value.
func (k *KeywordInput) SetValue(value string) {
	k.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (k *KeywordInput) Focus() tea.Cmd {
	return k.textinput.Focus()
}

// Blur removes focus from the input.
func (k *KeywordInput) Blur() {
	k.textinput.Blur()
}

// Focused returns whether the input is focused.
func (k *KeywordInput) Focused() bool {
	return k.textinput.Focused()
}

// SetWidth sets the width of the input.
func (k *KeywordInput) SetWidth(width int) {
	k.width = width
	// Account for label and border.
	inputWidth := width - 14
	if inputWidth < 20 {
		inputWidth = 20
	}
	k.textinput.Width = inputWidth
}

// Width returns the current width.
func (k *KeywordInput) Width() int {
	return k.width
}

// Reset clears the input.
func (k *KeywordInput) Reset() {
	k.textinput.Reset()
}
