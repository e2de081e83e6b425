package highlight

import (
	"strings"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// Match returns, in document order, every text node under root whose text
// contains target.
//
// Containers with an excluded tag are pruned together with their whole
// subtree, root included. Markers are leaves of their own kind and are
// never returned. target must be non-empty; an empty target matches nothing.
//
// The tree is not modified. Callers mutate only after Match returns.
func Match(root *domain.Node, target string, opts Options) []*domain.Node {
	if root == nil || target == "" {
		return nil
	}

	var matches []*domain.Node
	stack := []*domain.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Kind {
		case domain.TextNode:
			if strings.Contains(n.Text, target) {
				matches = append(matches, n)
			}
		case domain.ContainerNode:
			if opts.excludes(n.Tag) {
				continue
			}
			// Push in reverse so children pop in document order.
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, n.Children[i])
			}
		}
	}
	return matches
}
