package htmldoc

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// ParseScoped reads HTML from r and returns the root together with the
// containers matching the CSS selector. Matches nested inside another
// match are dropped, so scopes never overlap. An empty selector scopes the
// whole document.
func (p *Parser) ParseScoped(r io.Reader, selector string) (*domain.Node, []*domain.Node, error) {
	root, conv, err := p.parse(r)
	if err != nil {
		return nil, nil, err
	}
	if selector == "" {
		return root, []*domain.Node{root}, nil
	}

	sel, err := compile(selector)
	if err != nil {
		return nil, nil, err
	}

	doc := goquery.NewDocumentFromNode(conv.doc)
	var scopes []*domain.Node
	doc.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			if scope, ok := conv.index[n]; ok && scope.Kind == domain.ContainerNode {
				scopes = append(scopes, scope)
			}
		}
	})
	return root, outermost(scopes), nil
}

// compile validates a selector up front so a typo is reported instead of
// silently matching nothing.
func compile(selector string) (goquery.Matcher, error) {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %v: %w", selector, err, domain.ErrInvalidInput)
	}
	return m, nil
}

// outermost removes nodes that have an ancestor in the list.
func outermost(nodes []*domain.Node) []*domain.Node {
	in := make(map[*domain.Node]bool, len(nodes))
	for _, n := range nodes {
		in[n] = true
	}
	result := make([]*domain.Node, 0, len(nodes))
	for _, n := range nodes {
		nested := false
		for p := n.Parent; p != nil; p = p.Parent {
			if in[p] {
				nested = true
				break
			}
		}
		if !nested {
			result = append(result, n)
		}
	}
	return result
}
