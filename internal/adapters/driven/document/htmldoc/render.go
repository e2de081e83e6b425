package htmldoc

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
)

// markerTextColor is the foreground colour of rendered markers.
const markerTextColor = "#000000"

// Ensure Renderer implements the interface.
var _ driven.DocumentRenderer = (*Renderer)(nil)

// Renderer writes a domain tree as HTML.
type Renderer struct {
	// MarkerClass is set on every rendered <mark> element.
	MarkerClass string
}

// NewRenderer creates a renderer tagging markers with markerClass.
func NewRenderer(markerClass string) *Renderer {
	if markerClass == "" {
		markerClass = domain.DefaultMarkerClass
	}
	return &Renderer{MarkerClass: markerClass}
}

// Render writes root as HTML. Document and fragment roots render only
// their children; any other node renders itself.
func (r *Renderer) Render(w io.Writer, root *domain.Node) error {
	if root == nil {
		return nil
	}
	out := r.build(root)
	if out == nil {
		return nil
	}
	if err := html.Render(w, out); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

// build converts the domain subtree at root to an HTML tree.
func (r *Renderer) build(root *domain.Node) *html.Node {
	type frame struct {
		src    *domain.Node
		parent *html.Node
	}

	top := r.node(root)
	if top == nil {
		return nil
	}
	if root.Kind != domain.ContainerNode {
		return top
	}

	var stack []frame
	for i := len(root.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{src: root.Children[i], parent: top})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.src == nil {
			continue
		}

		dst := r.node(f.src)
		if dst == nil {
			continue
		}
		f.parent.AppendChild(dst)

		if f.src.Kind != domain.ContainerNode {
			continue
		}
		for i := len(f.src.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{src: f.src.Children[i], parent: dst})
		}
	}
	return top
}

// node converts one domain node, without children.
func (r *Renderer) node(n *domain.Node) *html.Node {
	switch n.Kind {
	case domain.TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Text}

	case domain.MarkerNode:
		mark := &html.Node{
			Type:     html.ElementNode,
			Data:     "mark",
			DataAtom: atom.Mark,
			Attr: []html.Attribute{
				{Key: "class", Val: r.MarkerClass},
				{Key: "data-keyword", Val: n.Text},
				{Key: "style", Val: MarkerStyle(n.Color)},
			},
		}
		mark.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
		return mark

	case domain.RawNode:
		src, ok := n.Raw.(*html.Node)
		if !ok {
			return nil
		}
		return &html.Node{
			Type:      src.Type,
			Data:      src.Data,
			Namespace: src.Namespace,
			Attr:      append([]html.Attribute(nil), src.Attr...),
		}

	case domain.ContainerNode:
		switch n.Tag {
		case DocumentTag, FragmentTag, "":
			return &html.Node{Type: html.DocumentNode}
		}
		el := &html.Node{
			Type:     html.ElementNode,
			Data:     n.Tag,
			DataAtom: atom.Lookup([]byte(n.Tag)),
		}
		if ns, ok := n.Raw.(string); ok {
			el.Namespace = ns
		}
		for _, a := range n.Attrs {
			el.Attr = append(el.Attr, html.Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val})
		}
		return el
	}
	return nil
}

// MarkerStyle returns the inline style of a marker with the given colour.
func MarkerStyle(color string) string {
	return fmt.Sprintf("background-color: %s; color: %s; padding: 0; border-radius: 2px", color, markerTextColor)
}
