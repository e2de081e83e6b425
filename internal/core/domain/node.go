package domain

import (
	"fmt"
	"strings"
)

// NodeKind discriminates the variants of a document tree node.
type NodeKind int

// Node kinds.
const (
	// ContainerNode holds an ordered list of children.
	ContainerNode NodeKind = iota

	// TextNode is a leaf carrying plain text.
	TextNode

	// MarkerNode is a leaf standing in for one highlighted occurrence.
	// Its Text is the matched text and Color the highlight colour.
	MarkerNode

	// RawNode is an opaque leaf (comments, doctypes) that is never matched.
	RawNode
)

// String returns the string representation.
func (k NodeKind) String() string {
	switch k {
	case ContainerNode:
		return "container"
	case TextNode:
		return "text"
	case MarkerNode:
		return "marker"
	case RawNode:
		return "raw"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Attr is a container attribute.
type Attr struct {
	Namespace string
	Key       string
	Val       string
}

// Node is one node of a mutable document tree.
//
// The tree is owned by the caller and shared with whatever renders it.
// It carries no locking; callers must not mutate it concurrently.
type Node struct {
	Kind NodeKind

	// Tag is the container type (e.g. "p", "script"). Empty for a root.
	Tag string

	// Attrs are container attributes, preserved verbatim.
	Attrs []Attr

	// Text is the content of text nodes and the matched text of markers.
	Text string

	// Color is the highlight colour of a marker.
	Color string

	// Raw carries adapter-specific data preserved across a round trip.
	Raw any

	Parent   *Node
	Children []*Node
}

// NewContainer creates a container node with the given children.
func NewContainer(tag string, children ...*Node) *Node {
	n := &Node{Kind: ContainerNode, Tag: tag}
	n.AppendChild(children...)
	return n
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: TextNode, Text: text}
}

// NewMarker creates a marker for one occurrence of text.
func NewMarker(text, color string) *Node {
	return &Node{Kind: MarkerNode, Text: text, Color: color}
}

// NewRaw creates an opaque leaf carrying payload.
func NewRaw(payload any) *Node {
	return &Node{Kind: RawNode, Raw: payload}
}

// Attr returns the value of the attribute key and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AppendChild adds children at the end, detaching them from any previous parent.
func (n *Node) AppendChild(children ...*Node) {
	for _, c := range children {
		if c.Parent != nil {
			//nolint:errcheck // c.Parent is known to hold c
			_ = c.Parent.RemoveChild(c)
		}
		c.Parent = n
		n.Children = append(n.Children, c)
	}
}

// IndexOf returns the position of child in n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	i := n.IndexOf(child)
	if i < 0 {
		return fmt.Errorf("remove child: %w", ErrDetachedNode)
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	child.Parent = nil
	return nil
}

// ReplaceChild replaces old with repl, in order, at old's position.
// Returns ErrDetachedNode if old is not a child of n.
func (n *Node) ReplaceChild(old *Node, repl ...*Node) error {
	if n.IndexOf(old) < 0 {
		return fmt.Errorf("replace child: %w", ErrDetachedNode)
	}
	for _, r := range repl {
		if r.Parent != nil && r != old {
			//nolint:errcheck // r.Parent is known to hold r
			_ = r.Parent.RemoveChild(r)
		}
		r.Parent = n
	}
	i := n.IndexOf(old)

	children := make([]*Node, 0, len(n.Children)-1+len(repl))
	children = append(children, n.Children[:i]...)
	children = append(children, repl...)
	children = append(children, n.Children[i+1:]...)
	n.Children = children
	if n.IndexOf(old) < 0 {
		old.Parent = nil
	}
	return nil
}

// Normalize merges consecutive text children into one and drops empty
// text children, recursively for the whole subtree.
func (n *Node) Normalize() {
	if n.Kind != ContainerNode {
		return
	}
	out := n.Children[:0]
	var last *Node
	for _, c := range n.Children {
		if c.Kind == TextNode {
			if c.Text == "" {
				c.Parent = nil
				continue
			}
			if last != nil && last.Kind == TextNode {
				last.Text += c.Text
				c.Parent = nil
				continue
			}
		}
		if c.Kind == ContainerNode {
			c.Normalize()
		}
		out = append(out, c)
		last = c
	}
	for i := len(out); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = out
}

// TextContent returns the visible text of the subtree in document order.
// Marker text is included; raw nodes contribute nothing.
func (n *Node) TextContent() string {
	var b strings.Builder
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch cur.Kind {
		case TextNode, MarkerNode:
			b.WriteString(cur.Text)
		case ContainerNode:
			for i := len(cur.Children) - 1; i >= 0; i-- {
				stack = append(stack, cur.Children[i])
			}
		}
	}
	return b.String()
}

// Clone returns a deep copy of the subtree. The copy has no parent.
func (n *Node) Clone() *Node {
	c := &Node{
		Kind:  n.Kind,
		Tag:   n.Tag,
		Text:  n.Text,
		Color: n.Color,
		Raw:   n.Raw,
	}
	if n.Attrs != nil {
		c.Attrs = append([]Attr(nil), n.Attrs...)
	}
	for _, child := range n.Children {
		c.AppendChild(child.Clone())
	}
	return c
}
