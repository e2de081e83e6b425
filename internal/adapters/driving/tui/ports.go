// Package tui provides an interactive terminal keyword manager for hilite.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driving"
)

// Ports aggregates the interfaces required by the TUI.
type Ports struct {
	// Keyword manages the keyword list.
	Keyword driving.KeywordService

	// Settings reads and updates application settings.
	Settings driving.SettingsService

	// Changes, when set, reloads the list whenever another process edits it.
	Changes driven.ChangeNotifier
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Keyword == nil {
		return ErrMissingKeywordService
	}
	if p.Settings == nil {
		return ErrMissingSettingsService
	}
	return nil
}
