package domain

import (
	"regexp"
	"strings"
	"time"
)

// DefaultColor is the highlight colour used when none is given.
const DefaultColor = "#FFFF00"

// customColorName is reported for colours that are not a preset.
const customColorName = "Custom"

// Keyword is a stored keyword record.
// Text values are unique across the list; order in the list is the
// order in which keywords are applied.
type Keyword struct {
	// ID is the unique identifier for the keyword.
	ID string `json:"id" yaml:"id"`

	// Text is the literal string to highlight. Never empty.
	Text string `json:"text" yaml:"text"`

	// Color is the marker background as a hex colour.
	Color string `json:"color" yaml:"color"`

	// Enabled controls whether the keyword takes part in highlighting.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// CreatedAt is when the keyword was added.
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`

	// LastUsed is when the keyword was last modified.
	LastUsed time.Time `json:"lastUsed" yaml:"last_used"`
}

// KeywordUpdate holds optional field changes for a keyword.
// Nil fields are left unchanged.
type KeywordUpdate struct {
	Text    *string
	Color   *string
	Enabled *bool
}

// KeywordChange is delivered when the stored keyword list changes.
type KeywordChange struct {
	// Old is the list before the change.
	Old []Keyword `json:"oldValue"`

	// New is the list after the change.
	New []Keyword `json:"newValue"`
}

// EnabledKeywords returns the enabled subset of keywords, preserving order.
func EnabledKeywords(keywords []Keyword) []Keyword {
	result := make([]Keyword, 0, len(keywords))
	for i := range keywords {
		if keywords[i].Enabled {
			result = append(result, keywords[i])
		}
	}
	return result
}

// FindKeyword returns the index of the keyword matching ref by ID or text,
// or -1 when none matches. IDs take precedence over texts.
func FindKeyword(keywords []Keyword, ref string) int {
	for i := range keywords {
		if keywords[i].ID == ref {
			return i
		}
	}
	for i := range keywords {
		if keywords[i].Text == ref {
			return i
		}
	}
	return -1
}

// KeywordsEqual reports whether two lists hold the same records in the same order.
func KeywordsEqual(a, b []Keyword) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Text != b[i].Text || a[i].Color != b[i].Color ||
			a[i].Enabled != b[i].Enabled || !a[i].LastUsed.Equal(b[i].LastUsed) {
			return false
		}
	}
	return true
}

// ColorPreset is a named highlight colour.
type ColorPreset struct {
	Name      string
	Value     string
	TextColor string
}

// ColorPresets returns the built-in highlight colours.
func ColorPresets() []ColorPreset {
	return []ColorPreset{
		{Name: "Yellow", Value: "#FFFF00", TextColor: "#000000"},
		{Name: "Green", Value: "#4ADE80", TextColor: "#000000"},
		{Name: "Blue", Value: "#60A5FA", TextColor: "#000000"},
		{Name: "Pink", Value: "#F472B6", TextColor: "#000000"},
		{Name: "Orange", Value: "#FB923C", TextColor: "#000000"},
		{Name: "Purple", Value: "#C084FC", TextColor: "#000000"},
		{Name: "Sky", Value: "#67E8F9", TextColor: "#000000"},
		{Name: "Lime", Value: "#BEF264", TextColor: "#000000"},
	}
}

// ColorName returns the preset name for a colour value, or "Custom".
func ColorName(value string) string {
	for _, p := range ColorPresets() {
		if strings.EqualFold(p.Value, value) {
			return p.Name
		}
	}
	return customColorName
}

// ResolveColor maps a preset name (case-insensitive) to its value.
// Other inputs are returned unchanged.
func ResolveColor(nameOrValue string) string {
	for _, p := range ColorPresets() {
		if strings.EqualFold(p.Name, nameOrValue) {
			return p.Value
		}
	}
	return nameOrValue
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor returns ErrInvalidColor unless value is #RGB or #RRGGBB.
func ValidateColor(value string) error {
	if !hexColor.MatchString(value) {
		return ErrInvalidColor
	}
	return nil
}
