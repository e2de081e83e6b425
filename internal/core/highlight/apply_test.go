package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

func keyword(id, text, color string, enabled bool) domain.Keyword {
	return domain.Keyword{ID: id, Text: text, Color: color, Enabled: enabled}
}

func TestApplyAll_SkipsDisabled(t *testing.T) {
	root := domain.NewContainer("p", domain.NewText("the cat and the dog"))
	keywords := []domain.Keyword{
		keyword("1", "cat", "#FFFF00", true),
		keyword("2", "dog", "#60A5FA", false),
	}

	res := ApplyAll(root, keywords, DefaultOptions())

	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Passes, 1)
	assert.Equal(t, "cat", res.Passes[0].Text)
	assert.Equal(t, 1, res.Passes[0].Count)
	assert.Equal(t, map[string]int{"cat": 1}, CountMarkers(root))
	assert.Equal(t, "the cat and the dog", root.TextContent())
}

func TestApplyAll_ClearsPreviousMarkers(t *testing.T) {
	root := domain.NewContainer("p", domain.NewText("cat dog"))
	keywords := []domain.Keyword{
		keyword("1", "cat", "#FFFF00", true),
		keyword("2", "dog", "#60A5FA", true),
	}
	first := ApplyAll(root, keywords, DefaultOptions())
	require.Equal(t, 2, first.Total)

	// Deleting "cat" and re-applying removes its markers.
	second := ApplyAll(root, keywords[1:], DefaultOptions())

	assert.Equal(t, 2, second.Cleared)
	assert.Equal(t, 1, second.Total)
	assert.Equal(t, map[string]int{"dog": 1}, CountMarkers(root))
}

func TestApplyAll_Idempotent(t *testing.T) {
	root := domain.NewContainer("p", domain.NewText("cat cat"))
	keywords := []domain.Keyword{keyword("1", "cat", "#FFFF00", true)}

	ApplyAll(root, keywords, DefaultOptions())
	res := ApplyAll(root, keywords, DefaultOptions())

	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, map[string]int{"cat": 2}, CountMarkers(root))
}

func TestApplyAll_RoundTrip(t *testing.T) {
	root := domain.NewContainer("body",
		domain.NewContainer("h1", domain.NewText("Cats and dogs")),
		domain.NewContainer("p", domain.NewText("a cat, a dog, a bird")),
		domain.NewContainer("ul",
			domain.NewContainer("li", domain.NewText("bird")),
			domain.NewContainer("li", domain.NewText("no match here")),
		),
	)
	original := root.TextContent()
	keywords := []domain.Keyword{
		keyword("1", "cat", "#FFFF00", true),
		keyword("2", "dog", "#4ADE80", true),
		keyword("3", "bird", "#F472B6", true),
	}

	res := ApplyAll(root, keywords, DefaultOptions())
	require.Equal(t, 5, res.Total)
	assert.Equal(t, original, root.TextContent())

	removed := Clear(root)

	assert.Equal(t, 5, removed)
	assert.Equal(t, original, root.TextContent())
	assert.Equal(t, original, plainText(root))
}

func TestApplyAll_OrderMatters(t *testing.T) {
	keywords := []domain.Keyword{
		keyword("1", "cat", "#FFFF00", true),
		keyword("2", "category", "#4ADE80", true),
	}

	shortFirst := domain.NewContainer("p", domain.NewText("category"))
	ApplyAll(shortFirst, keywords, DefaultOptions())

	longFirst := domain.NewContainer("p", domain.NewText("category"))
	ApplyAll(longFirst, []domain.Keyword{keywords[1], keywords[0]}, DefaultOptions())

	assert.Equal(t, map[string]int{"cat": 1}, CountMarkers(shortFirst))
	assert.Equal(t, map[string]int{"category": 1}, CountMarkers(longFirst))
}

func TestApplyAll_FailingPassDoesNotAbort(t *testing.T) {
	root := domain.NewContainer("p", domain.NewText("cat dog"))
	keywords := []domain.Keyword{
		keyword("1", "", "#FFFF00", true),
		keyword("2", "dog", "#4ADE80", true),
	}

	res := ApplyAll(root, keywords, DefaultOptions())

	require.Len(t, res.Passes, 2)
	assert.ErrorIs(t, res.Passes[0].Err, domain.ErrInvalidInput)
	assert.NoError(t, res.Passes[1].Err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Failed(), 1)
}

func TestApplyAll_EmptyList(t *testing.T) {
	root := domain.NewContainer("p", domain.NewText("cat"))
	ApplyAll(root, []domain.Keyword{keyword("1", "cat", "#FFFF00", true)}, DefaultOptions())

	res := ApplyAll(root, nil, DefaultOptions())

	assert.Equal(t, 1, res.Cleared)
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Passes)
	assert.Empty(t, CountMarkers(root))
}

func TestApplyIncremental_KeepsExistingMarkers(t *testing.T) {
	root := domain.NewContainer("p", domain.NewText("cat dog"))
	ApplyAll(root, []domain.Keyword{keyword("1", "cat", "#FFFF00", true)}, DefaultOptions())

	p := ApplyIncremental(root, keyword("2", "dog", "#4ADE80", true), DefaultOptions())

	require.NoError(t, p.Err)
	assert.Equal(t, 1, p.Count)
	assert.Equal(t, "2", p.KeywordID)
	assert.Equal(t, map[string]int{"cat": 1, "dog": 1}, CountMarkers(root))
}

func TestApplyIncremental_DoesNotReconcile(t *testing.T) {
	root := domain.NewContainer("p", domain.NewText("cat"))
	ApplyAll(root, []domain.Keyword{keyword("1", "cat", "#FFFF00", true)}, DefaultOptions())

	p := ApplyIncremental(root, keyword("2", "cat", "#4ADE80", true), DefaultOptions())

	assert.Zero(t, p.Count)
	assert.Equal(t, map[string]int{"cat": 1}, CountMarkers(root))
}

func TestRunPass_RecoversPanic(t *testing.T) {
	// A nil child makes the scan dereference nil.
	root := domain.NewContainer("p")
	root.Children = append(root.Children, nil)

	p := runPass(root, keyword("1", "cat", "#FFFF00", true), DefaultOptions())

	require.Error(t, p.Err)
	assert.Contains(t, p.Err.Error(), "pass aborted")
}
