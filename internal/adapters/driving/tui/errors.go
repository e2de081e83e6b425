package tui

import "errors"

// ErrMissingKeywordService is returned when the keyword service is not provided.
var ErrMissingKeywordService = errors.New("tui: keyword service is required")

// ErrMissingSettingsService is returned when the settings service is not provided.
var ErrMissingSettingsService = errors.New("tui: settings service is required")
