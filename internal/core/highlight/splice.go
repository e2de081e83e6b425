package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// Splice replaces every node in matches with its text split on target,
// with a marker for target between consecutive parts.
//
// A node with k occurrences becomes 2k+1 siblings: part 0, marker, part 1,
// ..., part k. Parts are kept even when empty. Occurrences are literal,
// non-overlapping, and found left to right.
//
// Nodes are handled independently: a node without a parent is skipped and
// reported with domain.ErrDetachedNode in the joined error while the rest
// are still spliced. The returned count is the number of markers inserted.
func Splice(matches []*domain.Node, target, color string) (int, error) {
	if target == "" {
		return 0, fmt.Errorf("splice: empty target: %w", domain.ErrInvalidInput)
	}

	count := 0
	var errs []error
	for i, node := range matches {
		n, err := spliceNode(node, target, color)
		if err != nil {
			errs = append(errs, fmt.Errorf("node %d: %w", i, err))
			continue
		}
		count += n
	}
	return count, errors.Join(errs...)
}

// spliceNode replaces a single text node and returns its marker count.
func spliceNode(node *domain.Node, target, color string) (int, error) {
	parent := node.Parent
	if parent == nil {
		return 0, domain.ErrDetachedNode
	}

	parts := strings.Split(node.Text, target)
	seq := make([]*domain.Node, 0, 2*len(parts)-1)
	for i, part := range parts {
		seq = append(seq, domain.NewText(part))
		if i < len(parts)-1 {
			seq = append(seq, domain.NewMarker(target, color))
		}
	}

	if err := parent.ReplaceChild(node, seq...); err != nil {
		return 0, err
	}
	return len(parts) - 1, nil
}

// Highlight marks every occurrence of target under root with color.
// It returns domain.ErrInvalidInput for an empty target without scanning.
func Highlight(root *domain.Node, target, color string, opts Options) (int, error) {
	if target == "" {
		return 0, fmt.Errorf("highlight: empty keyword: %w", domain.ErrInvalidInput)
	}
	return Splice(Match(root, target, opts), target, color)
}
