package transfer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

func sampleKeywords() []domain.Keyword {
	created := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	return []domain.Keyword{
		{ID: "k1", Text: "cat", Color: "#FFFF00", Enabled: true, CreatedAt: created, LastUsed: created},
		{ID: "k2", Text: "dog", Color: "#4ADE80", Enabled: false, CreatedAt: created, LastUsed: created},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"YML", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("backup.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("backup.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("backup"))
}

func TestExportImport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleKeywords(), FormatYAML))
	assert.Contains(t, buf.String(), "keywords:")
	assert.Contains(t, buf.String(), "created_at:")

	got, err := Import(&buf, FormatYAML)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cat", got[0].Text)
	assert.False(t, got[1].Enabled)
	assert.True(t, sampleKeywords()[0].CreatedAt.Equal(got[0].CreatedAt))
}

func TestExportImport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, sampleKeywords(), FormatJSON))
	assert.True(t, strings.HasPrefix(buf.String(), "["))
	assert.Contains(t, buf.String(), `"createdAt"`)

	got, err := Import(&buf, FormatJSON)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "#4ADE80", got[1].Color)
}

func TestImport_AlternateShapes(t *testing.T) {
	yamlList := "- text: cat\n  color: Pink\n- text: dog\n"
	got, err := Import(strings.NewReader(yamlList), FormatYAML)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Pink", got[0].Color)

	jsonObject := `{"keywords": [{"text": "cat"}]}`
	got, err = Import(strings.NewReader(jsonObject), FormatJSON)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cat", got[0].Text)
}

func TestImport_Empty(t *testing.T) {
	got, err := Import(strings.NewReader("  \n"), FormatYAML)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImport_Malformed(t *testing.T) {
	_, err := Import(strings.NewReader("[{"), FormatJSON)
	assert.Error(t, err)

	_, err = Import(strings.NewReader("keywords: [unclosed"), FormatYAML)
	assert.Error(t, err)
}

func TestExport_UnsupportedFormat(t *testing.T) {
	err := Export(&bytes.Buffer{}, nil, Format("xml"))

	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
