// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionBackend
	SectionExcludedTags
)

// Overview items, in display order.
const (
	itemDefaultColor = iota
	itemBackend
	itemExcludedTags
	itemCount
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

var errNoSettingsService = errors.New("settings service not available")

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error

	// Navigation state
	section  Section
	selected int

	// tagsInput edits the excluded tags as a comma-separated list.
	tagsInput textinput.Model

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	tagsInput := textinput.New()
	tagsInput.Placeholder = "script, style, mark"
	tagsInput.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		tagsInput:       tagsInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.backToOverview()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEsc {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewKeywords}
			}
		}
		v.backToOverview()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionBackend:
		return v.handleBackendKeys(msg)
	case SectionExcludedTags:
		return v.handleTagsKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < itemCount-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		switch v.selected {
		case itemDefaultColor:
			current := v.settings.Highlight.DefaultColor
			return v, func() tea.Msg {
				return messages.ColorRequested{Current: current}
			}
		case itemBackend:
			v.section = SectionBackend
			v.selected = v.backendIndex()
		case itemExcludedTags:
			v.section = SectionExcludedTags
			v.tagsInput.SetValue(strings.Join(v.settings.Highlight.ExcludedTags, ", "))
			return v, v.tagsInput.Focus()
		}
	}
	return v, nil
}

func (v *View) handleBackendKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	backends := domain.AllStorageBackends()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(backends)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < len(backends) {
			return v, v.setBackend(backends[v.selected])
		}
	}
	return v, nil
}

func (v *View) handleTagsKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		return v, v.setExcludedTags(splitTags(v.tagsInput.Value()))
	}
	var cmd tea.Cmd
	v.tagsInput, cmd = v.tagsInput.Update(msg)
	return v, cmd
}

// Commands to update settings.

func (v *View) setBackend(backend domain.StorageBackend) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Err: v.settingsService.SetStorageBackend(backend)}
	}
}

func (v *View) setExcludedTags(tags []string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Err: v.settingsService.SetExcludedTags(tags)}
	}
}

// splitTags splits a comma or space separated list.
func splitTags(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

func (v *View) backendIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, b := range domain.AllStorageBackends() {
		if b == v.settings.Storage.Backend {
			return i
		}
	}
	return 0
}

func (v *View) backToOverview() {
	v.section = SectionOverview
	v.selected = 0
	v.tagsInput.Blur()
	v.tagsInput.SetValue("")
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionBackend:
		b.WriteString(v.renderBackendSelect())
	case SectionExcludedTags:
		b.WriteString(v.renderTagsInput())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	color := v.settings.Highlight.DefaultColor
	tags := strings.Join(v.settings.Highlight.ExcludedTags, ", ")
	if tags == "" {
		tags = "(none)"
	}
	backend := v.settings.Storage.Backend.Description()
	if v.settings.Storage.Backend == domain.StorageBackendRedis && v.settings.Storage.RedisAddr != "" {
		backend += " at " + v.settings.Storage.RedisAddr
	}

	items := []struct {
		label string
		value string
	}{
		{"Default Colour", fmt.Sprintf("%s %s", domain.ColorName(color), v.styles.Swatch(color, " "+color+" "))},
		{"Storage Backend", backend},
		{"Excluded Tags", tags},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		label := fmt.Sprintf("%s%s: ", indicator, item.label)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(label))
		} else {
			b.WriteString(v.styles.Normal.Render(label))
		}
		b.WriteString(item.value)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Marker class: %s", v.settings.Highlight.MarkerClass)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Watch interval: %s", v.settings.Watch.MinInterval)))
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderBackendSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Storage Backend"))
	b.WriteString("\n\n")

	for i, backend := range domain.AllStorageBackends() {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		current := ""
		if backend == v.settings.Storage.Backend {
			current = v.styles.Success.Render(" (current)")
		}

		line := fmt.Sprintf("%s%s", indicator, backend.Description())
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString(current)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Warning.Render("Takes effect the next time hilite starts."))
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderTagsInput() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Excluded Tags"))
	b.WriteString("\n\n")
	b.WriteString(v.tagsInput.View())
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionBackend:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionExcludedTags:
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	default:
		return ""
	}
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings, or nil before they load.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last load or save error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.backToOverview()
	v.err = nil
}
