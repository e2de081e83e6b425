package highlight

import (
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// Clear replaces every marker under root with a text node holding the
// marker's text and normalises the marker's parent. It is not scoped to a
// keyword. Returns the number of markers removed; 0 leaves the tree as is.
func Clear(root *domain.Node) int {
	markers := collectMarkers(root)

	removed := 0
	touched := make(map[*domain.Node]struct{})
	for _, m := range markers {
		parent := m.Parent
		if parent == nil {
			continue
		}
		if err := parent.ReplaceChild(m, domain.NewText(m.Text)); err != nil {
			continue
		}
		touched[parent] = struct{}{}
		removed++
	}

	for parent := range touched {
		parent.Normalize()
	}
	return removed
}

// CountMarkers returns the number of markers under root per marker text.
func CountMarkers(root *domain.Node) map[string]int {
	counts := make(map[string]int)
	for _, m := range collectMarkers(root) {
		counts[m.Text]++
	}
	return counts
}

// collectMarkers returns every marker under root in document order.
func collectMarkers(root *domain.Node) []*domain.Node {
	if root == nil {
		return nil
	}
	var markers []*domain.Node
	stack := []*domain.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Kind {
		case domain.MarkerNode:
			markers = append(markers, n)
		case domain.ContainerNode:
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, n.Children[i])
			}
		}
	}
	return markers
}
