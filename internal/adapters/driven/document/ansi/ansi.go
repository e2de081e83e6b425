// Package ansi renders node trees for the terminal, painting each marker
// with its highlight colour.
package ansi

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/document/text"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
)

// markerForeground keeps marker text readable on light highlight colours.
const markerForeground = "#000000"

// Ensure Renderer implements the interface.
var _ driven.DocumentRenderer = (*Renderer)(nil)

// Renderer writes the visible text of a tree with ANSI-coloured markers.
type Renderer struct {
	// ForceColor emits true colour even when w is not a terminal.
	ForceColor bool
}

// NewRenderer creates a terminal renderer.
func NewRenderer(forceColor bool) *Renderer {
	return &Renderer{ForceColor: forceColor}
}

// Render writes root to w. Colours degrade to the profile detected for w.
func (r *Renderer) Render(w io.Writer, root *domain.Node) error {
	lg := lipgloss.NewRenderer(w)
	if r.ForceColor {
		lg.SetColorProfile(termenv.TrueColor)
	}

	styles := make(map[string]lipgloss.Style)
	paint := func(s, color string) string {
		style, ok := styles[color]
		if !ok {
			style = lg.NewStyle().
				Background(lipgloss.Color(color)).
				Foreground(lipgloss.Color(markerForeground))
			styles[color] = style
		}
		return style.Render(s)
	}

	return text.NewRenderer(paint).Render(w, root)
}
