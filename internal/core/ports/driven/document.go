package driven

import (
	"io"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// DocumentParser reads a document into a mutable node tree.
type DocumentParser interface {
	// Parse reads a document and returns its root node.
	Parse(r io.Reader) (*domain.Node, error)
}

// DocumentRenderer writes a node tree back out.
type DocumentRenderer interface {
	// Render writes the tree rooted at root to w.
	Render(w io.Writer, root *domain.Node) error
}

// ScopedParser is a DocumentParser that can also locate the containers
// matching a selector, so highlighting can be limited to them.
type ScopedParser interface {
	DocumentParser

	// ParseScoped reads a document and returns its root together with the
	// non-overlapping containers matching selector.
	ParseScoped(r io.Reader, selector string) (root *domain.Node, scopes []*domain.Node, err error)
}
