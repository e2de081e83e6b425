package colorpicker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
	upKey    = tea.KeyMsg{Type: tea.KeyUp}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOpen_SelectsCurrentPreset(t *testing.T) {
	v := NewView(nil)

	v.Open("Colour for cat", "#f472b6")

	assert.Equal(t, 3, v.Selected())
	assert.Contains(t, v.View(), "Colour for cat")
	assert.Contains(t, v.View(), "(current)")
}

func TestOpen_CustomColourSelectsCustomRow(t *testing.T) {
	v := NewView(nil)

	v.Open("", "#123456")

	assert.Equal(t, len(domain.ColorPresets()), v.Selected())
	assert.Contains(t, v.View(), "Choose Colour")
	assert.Contains(t, v.View(), "#123456")
}

func TestUpdate_ChoosePreset(t *testing.T) {
	v := NewView(nil)
	v.Open("", domain.DefaultColor)

	v, _ = v.Update(downKey)
	v, _ = v.Update(runes("j"))
	v, cmd := v.Update(enterKey)

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ColorChosen{Color: "#60A5FA"}, cmd())
}

func TestUpdate_NavigationBounds(t *testing.T) {
	v := NewView(nil)
	v.Open("", domain.DefaultColor)

	v, _ = v.Update(upKey)
	assert.Equal(t, 0, v.Selected())

	for range len(domain.ColorPresets()) + 3 {
		v, _ = v.Update(downKey)
	}
	assert.Equal(t, len(domain.ColorPresets()), v.Selected())

	v, _ = v.Update(runes("k"))
	assert.Equal(t, len(domain.ColorPresets())-1, v.Selected())
}

func TestUpdate_Cancel(t *testing.T) {
	v := NewView(nil)
	v.Open("", domain.DefaultColor)

	_, cmd := v.Update(escKey)

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ColorCancelled{}, cmd())
}

func TestUpdate_CustomColour(t *testing.T) {
	v := NewView(nil)
	v.Open("", domain.DefaultColor)
	v.selected = v.customRow()

	v, _ = v.Update(enterKey)
	require.True(t, v.Editing())

	v, _ = v.Update(runes("#abcdef"))
	v, cmd := v.Update(enterKey)

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ColorChosen{Color: "#ABCDEF"}, cmd())
	assert.False(t, v.Editing())
}

func TestUpdate_CustomColourInvalid(t *testing.T) {
	v := NewView(nil)
	v.Open("", domain.DefaultColor)
	v.selected = v.customRow()
	v, _ = v.Update(enterKey)

	v, _ = v.Update(runes("red"))
	v, cmd := v.Update(enterKey)

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidColor)
	assert.True(t, v.Editing())
	assert.Contains(t, v.View(), "Error:")

	// esc leaves the input without cancelling the picker.
	v, cmd = v.Update(escKey)
	assert.Nil(t, cmd)
	assert.False(t, v.Editing())
	assert.NoError(t, v.Err())
}

func TestUpdate_IgnoresNonKeyMessages(t *testing.T) {
	v := NewView(nil)

	_, cmd := v.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Nil(t, cmd)
	assert.Nil(t, v.Init())
}
