// Package colorpicker provides the highlight colour picker view for the TUI.
package colorpicker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// View lets the user pick a preset colour or type a hex value.
// The last row is the custom entry.
type View struct {
	styles  *styles.Styles
	presets []domain.ColorPreset

	title    string
	current  string
	selected int
	custom   textinput.Model
	err      error
}

// NewView creates a new colour picker.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	custom := textinput.New()
	custom.Placeholder = "#RRGGBB"
	custom.CharLimit = 7
	custom.Width = 10

	return &View{
		styles:  s,
		presets: domain.ColorPresets(),
		custom:  custom,
	}
}

// Open resets the picker for a new choice, selecting current.
func (v *View) Open(title, current string) {
	v.title = title
	v.current = current
	v.err = nil
	v.custom.Blur()
	v.custom.SetValue("")

	v.selected = v.customRow()
	for i, p := range v.presets {
		if strings.EqualFold(p.Value, current) {
			v.selected = i
			return
		}
	}
	v.custom.SetValue(current)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.custom.Focused() {
		return v.handleCustomKeys(keyMsg)
	}

	switch keyMsg.String() {
	case "esc", "q":
		return v, cancel
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < v.customRow() {
			v.selected++
		}
	case "enter":
		if v.selected == v.customRow() {
			v.err = nil
			return v, v.custom.Focus()
		}
		return v, choose(v.presets[v.selected].Value)
	}
	return v, nil
}

func (v *View) handleCustomKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.custom.Blur()
		v.err = nil
		return v, nil
	case "enter":
		value := strings.TrimSpace(v.custom.Value())
		if err := domain.ValidateColor(value); err != nil {
			v.err = fmt.Errorf("%q: %w", value, err)
			return v, nil
		}
		v.custom.Blur()
		return v, choose(strings.ToUpper(value))
	}
	var cmd tea.Cmd
	v.custom, cmd = v.custom.Update(msg)
	return v, cmd
}

func choose(color string) tea.Cmd {
	return func() tea.Msg {
		return messages.ColorChosen{Color: color}
	}
}

func cancel() tea.Msg {
	return messages.ColorCancelled{}
}

// View renders the picker.
func (v *View) View() string {
	var b strings.Builder

	title := v.title
	if title == "" {
		title = "Choose Colour"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	for i, p := range v.presets {
		b.WriteString(v.renderRow(i, p.Name, v.styles.Swatch(p.Value, " "+p.Value+" "), p.Value))
		b.WriteString("\n")
	}

	customLabel := "Custom"
	if v.custom.Focused() {
		customLabel += " " + v.custom.View()
	} else if value := v.custom.Value(); value != "" && domain.ValidateColor(value) == nil {
		customLabel += " " + v.styles.Swatch(value, " "+value+" ")
	}
	b.WriteString(v.renderRow(v.customRow(), customLabel, "", v.custom.Value()))
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.custom.Focused() {
		b.WriteString(v.styles.Help.Render("[enter] use colour  [esc] back to presets"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] choose  [esc] cancel"))
	}

	return b.String()
}

func (v *View) renderRow(index int, label, swatch, value string) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}
	line := fmt.Sprintf("%s%-8s", indicator, label)
	if index == v.selected {
		line = v.styles.Selected.Render(line)
	} else {
		line = v.styles.Normal.Render(line)
	}
	if swatch != "" {
		line += " " + swatch
	}
	if value != "" && strings.EqualFold(value, v.current) {
		line += v.styles.Success.Render(" (current)")
	}
	return line
}

func (v *View) customRow() int {
	return len(v.presets)
}

// Selected returns the selected row index.
func (v *View) Selected() int {
	return v.selected
}

// Editing reports whether the custom hex input has focus.
func (v *View) Editing() bool {
	return v.custom.Focused()
}

// Err returns the last validation error.
func (v *View) Err() error {
	return v.err
}
