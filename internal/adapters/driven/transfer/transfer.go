// Package transfer reads and writes keyword lists as YAML or JSON files for
// backup and sharing between machines.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// Format is a keyword file encoding.
type Format string

const (
	// FormatYAML is a YAML document with a top-level "keywords" list.
	FormatYAML Format = "yaml"

	// FormatJSON is a JSON array of keywords, the layout used by the store.
	FormatJSON Format = "json"
)

// ParseFormat converts a format name. "yml" is accepted as YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%q: %w", name, domain.ErrUnsupportedFormat)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// file is the YAML document layout.
type file struct {
	Keywords []domain.Keyword `yaml:"keywords"`
}

// Export writes keywords to w.
func Export(w io.Writer, keywords []domain.Keyword, format Format) error {
	if keywords == nil {
		keywords = []domain.Keyword{}
	}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(file{Keywords: keywords}); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(keywords); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%q: %w", format, domain.ErrUnsupportedFormat)
	}
}

// Import reads keywords from r. JSON input may be a bare array or an object
// with a "keywords" array; YAML input may be either shape too.
func Import(r io.Reader, format Format) ([]domain.Keyword, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading keywords: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []domain.Keyword{}, nil
	}

	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%q: %w", format, domain.ErrUnsupportedFormat)
	}
}

func decodeJSON(data []byte) ([]domain.Keyword, error) {
	var keywords []domain.Keyword
	if data[0] == '[' {
		if err := json.Unmarshal(data, &keywords); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
		return keywords, nil
	}

	var wrapped struct {
		Keywords []domain.Keyword `json:"keywords"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return wrapped.Keywords, nil
}

func decodeYAML(data []byte) ([]domain.Keyword, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return []domain.Keyword{}, nil
	}

	var keywords []domain.Keyword
	if node.Content[0].Kind == yaml.SequenceNode {
		if err := node.Content[0].Decode(&keywords); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
		return keywords, nil
	}

	var f file
	if err := node.Content[0].Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	return f.Keywords, nil
}
