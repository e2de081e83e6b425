package htmldoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
)

const expectedMark = `<mark class="text-highlighter-mark" data-keyword="cat" ` +
	`style="background-color: #FFFF00; color: #000000; padding: 0; border-radius: 2px">cat</mark>`

func parseFragment(t *testing.T, src string) *domain.Node {
	t.Helper()
	root, err := NewParser("", true).Parse(strings.NewReader(src))
	require.NoError(t, err)
	return root
}

func render(t *testing.T, root *domain.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewRenderer("").Render(&buf, root))
	return buf.String()
}

func TestParseFragment_Structure(t *testing.T) {
	root := parseFragment(t, `<p class="intro">the cat</p><!-- note -->`)

	assert.Equal(t, FragmentTag, root.Tag)
	require.Len(t, root.Children, 2)
	p := root.Children[0]
	assert.Equal(t, "p", p.Tag)
	class, ok := p.Attr("class")
	assert.True(t, ok)
	assert.Equal(t, "intro", class)
	assert.Equal(t, domain.RawNode, root.Children[1].Kind)
	assert.Equal(t, "the cat", root.TextContent())
}

func TestRender_HighlightedFragment(t *testing.T) {
	root := parseFragment(t, `<p>the cat sat</p><script>var cat;</script>`)

	n, err := highlight.Highlight(root, "cat", "#FFFF00", highlight.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, `<p>the `+expectedMark+` sat</p><script>var cat;</script>`, render(t, root))
}

func TestRoundTrip_ParseMarkersAndClear(t *testing.T) {
	original := `<p>cat and <b>cat</b></p>`
	root := parseFragment(t, original)
	_, err := highlight.Highlight(root, "cat", "#4ADE80", highlight.DefaultOptions())
	require.NoError(t, err)
	highlighted := render(t, root)

	reparsed := parseFragment(t, highlighted)

	assert.Equal(t, map[string]int{"cat": 2}, highlight.CountMarkers(reparsed))
	markers := 0
	for _, n := range []*domain.Node{reparsed.Children[0].Children[0], reparsed.Children[0].Children[2].Children[0]} {
		if n.Kind == domain.MarkerNode {
			markers++
			assert.Equal(t, "#4ADE80", n.Color)
		}
	}
	assert.Equal(t, 2, markers)

	assert.Equal(t, 2, highlight.Clear(reparsed))
	assert.Equal(t, original, render(t, reparsed))
}

func TestParse_ForeignMarkIsContainer(t *testing.T) {
	root := parseFragment(t, `<mark class="other">cat</mark>`)

	require.Len(t, root.Children, 1)
	assert.Equal(t, domain.ContainerNode, root.Children[0].Kind)
	assert.Equal(t, "mark", root.Children[0].Tag)
}

func TestParseDocument_RawNodesSurvive(t *testing.T) {
	src := `<!DOCTYPE html><html><head><title>Pets</title></head>` +
		`<body><!-- cat --><p>cat</p></body></html>`
	root, err := NewParser("", false).Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, DocumentTag, root.Tag)

	n, err := highlight.Highlight(root, "cat", "#FFFF00", highlight.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := render(t, root)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<!-- cat -->")
	assert.Contains(t, out, "<p>"+expectedMark+"</p>")
}

func TestParseScoped(t *testing.T) {
	src := `<div id="a"><p class="x">cat</p></div><p class="x">cat</p><p>cat</p>`

	tests := []struct {
		name     string
		selector string
		want     int
	}{
		{"empty selector scopes root", "", 1},
		{"class selector", "p.x", 2},
		{"nested matches collapse", "div, p.x", 2},
		{"no match", "table", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, scopes, err := NewParser("", true).ParseScoped(strings.NewReader(src), tt.selector)
			require.NoError(t, err)
			assert.Len(t, scopes, tt.want)
		})
	}
}

func TestParseScoped_HighlightsOnlyScope(t *testing.T) {
	src := `<p class="x">cat</p><p>cat</p>`
	root, scopes, err := NewParser("", true).ParseScoped(strings.NewReader(src), "p.x")
	require.NoError(t, err)
	require.Len(t, scopes, 1)

	_, err = highlight.Highlight(scopes[0], "cat", "#FFFF00", highlight.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, `<p class="x">`+expectedMark+`</p><p>cat</p>`, render(t, root))
}

func TestParseScoped_InvalidSelector(t *testing.T) {
	_, _, err := NewParser("", true).ParseScoped(strings.NewReader("<p>x</p>"), "p[")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMarkerStyle(t *testing.T) {
	assert.Equal(t,
		"background-color: #F472B6; color: #000000; padding: 0; border-radius: 2px",
		MarkerStyle("#F472B6"))
}

func TestRender_CustomMarkerClass(t *testing.T) {
	root := domain.NewContainer(FragmentTag, domain.NewMarker("cat", "#FFFF00"))
	var buf bytes.Buffer

	require.NoError(t, NewRenderer("hl").Render(&buf, root))

	assert.Contains(t, buf.String(), `class="hl"`)
	reparsed, err := NewParser("hl", true).Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, domain.MarkerNode, reparsed.Children[0].Kind)
}

func TestRoundTrip_RawTextElementsSurviveRepeatedHighlight(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"textarea", `<p>cat</p><textarea>cat</textarea>`},
		{"noscript", `<p>cat</p><noscript><p>cat</p></noscript>`},
		{"title", `<p>cat</p><title>cat</title>`},
		{"xmp", `<p>cat</p><xmp>cat</xmp>`},
		{"iframe", `<p>cat</p><iframe>cat</iframe>`},
		{"noembed", `<p>cat</p><noembed>cat</noembed>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseFragment(t, tt.src)
			n, err := highlight.Highlight(root, "cat", "#FFFF00", highlight.DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			first := render(t, root)

			again := parseFragment(t, first)
			n, err = highlight.Highlight(again, "cat", "#FFFF00", highlight.DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, 0, n)
			second := render(t, again)
			assert.Equal(t, first, second)

			cleared := parseFragment(t, second)
			assert.Equal(t, 1, highlight.Clear(cleared))
			assert.Equal(t, tt.src, render(t, cleared))
		})
	}
}

func TestParse_RawTextContentIsOpaque(t *testing.T) {
	root := parseFragment(t, `<textarea>cat</textarea>`)

	require.Len(t, root.Children, 1)
	textarea := root.Children[0]
	require.Len(t, textarea.Children, 1)
	assert.Equal(t, domain.RawNode, textarea.Children[0].Kind)
	assert.Empty(t, root.TextContent())
}

func TestParse_ForeignTitleIsText(t *testing.T) {
	root := parseFragment(t, `<svg><title>cat</title></svg>`)

	n, err := highlight.Highlight(root, "cat", "#FFFF00", highlight.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRender_KeepsElementNamespace(t *testing.T) {
	root := parseFragment(t, `<svg><circle r="1"></circle></svg><math><mi>x</mi></math><p>x</p>`)
	require.Len(t, root.Children, 3)
	assert.Equal(t, "svg", root.Children[0].Raw)

	out := NewRenderer("").build(root)

	svg := out.FirstChild
	require.NotNil(t, svg)
	assert.Equal(t, "svg", svg.Namespace)
	require.NotNil(t, svg.FirstChild)
	assert.Equal(t, "svg", svg.FirstChild.Namespace)

	math := svg.NextSibling
	require.NotNil(t, math)
	assert.Equal(t, "math", math.Namespace)
	assert.Equal(t, "math", math.FirstChild.Namespace)

	assert.Empty(t, math.NextSibling.Namespace)
}
