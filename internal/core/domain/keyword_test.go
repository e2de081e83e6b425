package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnabledKeywords_PreservesOrder(t *testing.T) {
	keywords := []Keyword{
		{ID: "1", Text: "a", Enabled: true},
		{ID: "2", Text: "b", Enabled: false},
		{ID: "3", Text: "c", Enabled: true},
	}

	enabled := EnabledKeywords(keywords)

	assert.Len(t, enabled, 2)
	assert.Equal(t, "1", enabled[0].ID)
	assert.Equal(t, "3", enabled[1].ID)
}

func TestEnabledKeywords_Empty(t *testing.T) {
	assert.Empty(t, EnabledKeywords(nil))
}

func TestFindKeyword(t *testing.T) {
	keywords := []Keyword{
		{ID: "id-1", Text: "cat"},
		{ID: "cat", Text: "dog"},
	}

	assert.Equal(t, 1, FindKeyword(keywords, "cat"), "ID takes precedence over text")
	assert.Equal(t, 0, FindKeyword(keywords, "id-1"))
	assert.Equal(t, 1, FindKeyword(keywords, "dog"))
	assert.Equal(t, -1, FindKeyword(keywords, "bird"))
}

func TestKeywordsEqual(t *testing.T) {
	now := time.Now()
	a := []Keyword{{ID: "1", Text: "cat", Color: "#FFFF00", Enabled: true, LastUsed: now}}
	b := []Keyword{{ID: "1", Text: "cat", Color: "#FFFF00", Enabled: true, LastUsed: now}}

	assert.True(t, KeywordsEqual(a, b))
	assert.True(t, KeywordsEqual(nil, []Keyword{}))

	b[0].Enabled = false
	assert.False(t, KeywordsEqual(a, b))
	assert.False(t, KeywordsEqual(a, nil))
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"#FFFF00", true},
		{"#ffff00", true},
		{"#FFF", true},
		{"FFFF00", false},
		{"#FFFF0", false},
		{"#GGGGGG", false},
		{"yellow", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateColor(tt.value)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidColor)
			}
		})
	}
}

func TestColorName(t *testing.T) {
	assert.Equal(t, "Yellow", ColorName("#ffff00"))
	assert.Equal(t, "Lime", ColorName("#BEF264"))
	assert.Equal(t, "Custom", ColorName("#123456"))
}

func TestResolveColor(t *testing.T) {
	assert.Equal(t, "#F472B6", ResolveColor("pink"))
	assert.Equal(t, "#123456", ResolveColor("#123456"))
}

func TestColorPresets_AreValid(t *testing.T) {
	presets := ColorPresets()

	assert.Len(t, presets, 8)
	for _, p := range presets {
		assert.NoError(t, ValidateColor(p.Value), p.Name)
	}
}
