// Package text reads plain-text documents and renders node trees as text.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
)

// RootTag is the tag of the container returned by Parser.
const RootTag = "#text"

// Ensure the types implement the interfaces.
var (
	_ driven.DocumentParser   = Parser{}
	_ driven.DocumentRenderer = (*Renderer)(nil)
)

// Parser reads a plain-text document as a single text node.
type Parser struct{}

// Parse reads all of r.
func (Parser) Parse(r io.Reader) (*domain.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading text: %w", err)
	}
	return domain.NewContainer(RootTag, domain.NewText(string(data))), nil
}

// MarkerFunc formats one marker.
type MarkerFunc func(text, color string) string

// Brackets formats markers as [text].
func Brackets(text, _ string) string {
	return "[" + text + "]"
}

// blockTags start and end on their own line.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tr": true, "ul": true,
}

// hiddenTags are never rendered.
var hiddenTags = map[string]bool{
	"head": true, "noscript": true, "script": true, "style": true, "template": true,
}

// Renderer writes the visible text of a tree, formatting markers with Marker.
type Renderer struct {
	Marker MarkerFunc
}

// NewRenderer creates a renderer. A nil marker uses Brackets.
func NewRenderer(marker MarkerFunc) *Renderer {
	if marker == nil {
		marker = Brackets
	}
	return &Renderer{Marker: marker}
}

// Render writes root as text. Block containers are separated by newlines.
func (r *Renderer) Render(w io.Writer, root *domain.Node) error {
	if root == nil {
		return nil
	}
	marker := r.Marker
	if marker == nil {
		marker = Brackets
	}

	var b lineWriter
	type frame struct {
		node *domain.Node
		exit bool
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node
		if n == nil {
			continue
		}

		switch n.Kind {
		case domain.TextNode:
			b.WriteString(n.Text)
		case domain.MarkerNode:
			b.WriteString(marker(n.Text, n.Color))
		case domain.ContainerNode:
			tag := strings.ToLower(n.Tag)
			if hiddenTags[tag] {
				continue
			}
			if blockTags[tag] {
				b.breakLine()
			}
			if f.exit {
				continue
			}
			stack = append(stack, frame{node: n, exit: true})
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: n.Children[i]})
			}
		}
	}
	b.finish()

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	return nil
}

// lineWriter accumulates output and avoids doubled line breaks.
type lineWriter struct {
	strings.Builder
}

// breakLine ends the current line unless the output is empty or already
// ends with a newline.
func (b *lineWriter) breakLine() {
	s := b.String()
	if s == "" || strings.HasSuffix(s, "\n") {
		return
	}
	b.WriteByte('\n')
}

// finish terminates non-empty output with a newline.
func (b *lineWriter) finish() {
	b.breakLine()
}
