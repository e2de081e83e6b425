// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewKeywords is the keyword list.
	ViewKeywords ViewType = iota
	// ViewAddKeyword is the new keyword input.
	ViewAddKeyword
	// ViewColor is the colour picker.
	ViewColor
	// ViewSettings is the settings view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewKeywords:
		return "keywords"
	case ViewAddKeyword:
		return "add_keyword"
	case ViewColor:
		return "color"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// KeywordsLoaded carries the keyword list from the service.
type KeywordsLoaded struct {
	Keywords []domain.Keyword
	Err      error
}

// KeywordsChanged carries a list edited elsewhere, delivered by a notifier.
type KeywordsChanged struct {
	Change domain.KeywordChange
}

// KeywordSubmitted is sent when new keyword text has been entered.
type KeywordSubmitted struct {
	Text string
}

// KeywordMutated reports the outcome of an add, toggle, recolour, delete or move.
type KeywordMutated struct {
	// Status is shown to the user on success.
	Status string
	// Select is the ID to select after the list reloads, if any.
	Select string
	Err    error
}

// ToggleRequested asks for a keyword to be enabled or disabled.
type ToggleRequested struct {
	Keyword domain.Keyword
}

// DeleteRequested asks for a keyword to be removed.
type DeleteRequested struct {
	Keyword domain.Keyword
}

// MoveRequested asks for a keyword to be moved by Offset places.
type MoveRequested struct {
	Keyword domain.Keyword
	Index   int
	Offset  int
}

// ColorRequested opens the colour picker for a keyword, or for the
// default colour when Keyword is nil.
type ColorRequested struct {
	Keyword *domain.Keyword
	Current string
}

// ColorChosen is sent when a colour is picked.
type ColorChosen struct {
	Color string
}

// ColorCancelled is sent when the picker is closed without a choice.
type ColorCancelled struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
