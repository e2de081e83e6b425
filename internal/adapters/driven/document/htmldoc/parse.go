package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
)

// Tags of the synthetic roots returned by Parse.
const (
	DocumentTag = "#document"
	FragmentTag = "#fragment"
)

// Ensure Parser implements the interface.
var _ driven.DocumentParser = (*Parser)(nil)

// Parser converts HTML into a domain tree.
type Parser struct {
	// MarkerClass identifies <mark> elements produced by the renderer.
	MarkerClass string

	// Fragment parses the input as body content rather than a full document.
	Fragment bool
}

// NewParser creates a parser recognising markers with markerClass.
func NewParser(markerClass string, fragment bool) *Parser {
	if markerClass == "" {
		markerClass = domain.DefaultMarkerClass
	}
	return &Parser{MarkerClass: markerClass, Fragment: fragment}
}

// Parse reads HTML from r.
func (p *Parser) Parse(r io.Reader) (*domain.Node, error) {
	root, _, err := p.parse(r)
	return root, err
}

// parse returns the domain root and the mapping from HTML nodes to domain
// nodes, used to resolve selections.
func (p *Parser) parse(r io.Reader) (*domain.Node, *conversion, error) {
	conv := &conversion{markerClass: p.MarkerClass, index: make(map[*html.Node]*domain.Node)}

	if !p.Fragment {
		doc, err := html.Parse(r)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing html: %w", err)
		}
		conv.doc = doc
		return conv.convert(doc), conv, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing html fragment: %w", err)
	}
	// Reparent the fragment under a document node so goquery can search it.
	doc := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		doc.AppendChild(n)
	}
	conv.doc = doc
	root := conv.convert(doc)
	root.Tag = FragmentTag
	return root, conv, nil
}

// conversion holds the state of one HTML to domain conversion.
type conversion struct {
	markerClass string
	doc         *html.Node
	index       map[*html.Node]*domain.Node
}

// convert builds the domain tree for the HTML subtree at n.
// The walk uses an explicit stack so deeply nested input cannot exhaust
// the goroutine stack.
func (c *conversion) convert(n *html.Node) *domain.Node {
	type frame struct {
		src    *html.Node
		parent *domain.Node
	}

	root := c.node(n)
	c.index[n] = root

	var stack []frame
	for child := n.LastChild; child != nil; child = child.PrevSibling {
		stack = append(stack, frame{src: child, parent: root})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dst := c.node(f.src)
		if dst == nil {
			continue
		}
		c.index[f.src] = dst
		f.parent.AppendChild(dst)

		if dst.Kind != domain.ContainerNode {
			continue
		}
		for child := f.src.LastChild; child != nil; child = child.PrevSibling {
			stack = append(stack, frame{src: child, parent: dst})
		}
	}
	return root
}

// node converts a single HTML node, without children. Unsupported node
// types return nil.
func (c *conversion) node(n *html.Node) *domain.Node {
	switch n.Type {
	case html.DocumentNode:
		return domain.NewContainer(DocumentTag)
	case html.TextNode:
		if n.Parent != nil && isRawTextElement(n.Parent) {
			return domain.NewRaw(&html.Node{Type: html.TextNode, Data: n.Data})
		}
		return domain.NewText(n.Data)
	case html.CommentNode, html.DoctypeNode:
		return domain.NewRaw(&html.Node{
			Type:      n.Type,
			Data:      n.Data,
			Namespace: n.Namespace,
			Attr:      append([]html.Attribute(nil), n.Attr...),
		})
	case html.ElementNode:
		if c.isMarker(n) {
			return domain.NewMarker(textContent(n), markerColor(n))
		}
		el := domain.NewContainer(n.Data)
		if n.Namespace != "" {
			el.Raw = n.Namespace
		}
		for _, a := range n.Attr {
			el.Attrs = append(el.Attrs, domain.Attr{Namespace: a.Namespace, Key: a.Key, Val: a.Val})
		}
		return el
	default:
		return nil
	}
}

// rawTextElements hold text the HTML renderer writes verbatim or escaped
// without reparsing markup, so markers spliced into it would not survive.
var rawTextElements = map[atom.Atom]bool{
	atom.Iframe:    true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Noscript:  true,
	atom.Plaintext: true,
	atom.Script:    true,
	atom.Style:     true,
	atom.Textarea:  true,
	atom.Title:     true,
	atom.Xmp:       true,
}

// isRawTextElement reports whether n is an HTML raw text or RCDATA element.
// Foreign elements such as svg <title> hold ordinary content.
func isRawTextElement(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Namespace == "" && rawTextElements[n.DataAtom]
}

// isMarker reports whether n is a <mark> element with the marker class.
func (c *conversion) isMarker(n *html.Node) bool {
	if n.DataAtom != atom.Mark && n.Data != "mark" {
		return false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			for _, class := range strings.Fields(a.Val) {
				if class == c.markerClass {
					return true
				}
			}
		}
	}
	return false
}

// textContent concatenates the text under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	stack := []*html.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			continue
		}
		for child := cur.LastChild; child != nil; child = child.PrevSibling {
			stack = append(stack, child)
		}
	}
	return b.String()
}

// markerColor reads the background colour from a marker's style attribute.
func markerColor(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key != "style" {
			continue
		}
		for _, decl := range strings.Split(a.Val, ";") {
			prop, val, ok := strings.Cut(decl, ":")
			if ok && strings.EqualFold(strings.TrimSpace(prop), "background-color") {
				return strings.TrimSpace(val)
			}
		}
	}
	return ""
}
