package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

func newKeywordService(t *testing.T, keywords ...domain.Keyword) (*KeywordService, *memory.KeywordStore) {
	t.Helper()
	store := memory.NewKeywordStore(keywords...)
	return NewKeywordService(store, NewSettingsService(memory.NewConfigStore())), store
}

func texts(keywords []domain.Keyword) []string {
	out := make([]string, len(keywords))
	for i := range keywords {
		out[i] = keywords[i].Text
	}
	return out
}

func TestKeywordService_Add(t *testing.T) {
	service, store := newKeywordService(t)
	ctx := context.Background()

	kw, err := service.Add(ctx, "  cat ", "")

	require.NoError(t, err)
	assert.NotEmpty(t, kw.ID)
	assert.Equal(t, "cat", kw.Text)
	assert.Equal(t, domain.DefaultColor, kw.Color)
	assert.True(t, kw.Enabled)
	assert.False(t, kw.CreatedAt.IsZero())

	stored, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Keyword{*kw}, stored)
}

func TestKeywordService_Add_PresetColor(t *testing.T) {
	service, _ := newKeywordService(t)

	kw, err := service.Add(context.Background(), "cat", "green")

	require.NoError(t, err)
	assert.Equal(t, "#4ADE80", kw.Color)
}

func TestKeywordService_Add_UsesConfiguredDefaultColor(t *testing.T) {
	settings := NewSettingsService(memory.NewConfigStore())
	require.NoError(t, settings.SetDefaultColor("#C084FC"))
	service := NewKeywordService(memory.NewKeywordStore(), settings)

	kw, err := service.Add(context.Background(), "cat", "")

	require.NoError(t, err)
	assert.Equal(t, "#C084FC", kw.Color)
}

func TestKeywordService_Add_Errors(t *testing.T) {
	service, _ := newKeywordService(t)
	ctx := context.Background()
	_, err := service.Add(ctx, "cat", "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		text  string
		color string
		want  error
	}{
		{"empty text", "   ", "", domain.ErrInvalidInput},
		{"duplicate", "cat", "", domain.ErrAlreadyExists},
		{"bad colour", "dog", "not-a-colour", domain.ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Add(ctx, tt.text, tt.color)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestKeywordService_Add_CaseSensitiveDuplicates(t *testing.T) {
	service, _ := newKeywordService(t)
	ctx := context.Background()

	_, err := service.Add(ctx, "cat", "")
	require.NoError(t, err)
	_, err = service.Add(ctx, "Cat", "")

	assert.NoError(t, err)
}

func TestKeywordService_Get(t *testing.T) {
	service, _ := newKeywordService(t, domain.Keyword{ID: "k1", Text: "cat"})
	ctx := context.Background()

	byID, err := service.Get(ctx, "k1")
	require.NoError(t, err)
	byText, err := service.Get(ctx, "cat")
	require.NoError(t, err)

	assert.Equal(t, byID, byText)

	_, err = service.Get(ctx, "dog")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKeywordService_Update(t *testing.T) {
	service, _ := newKeywordService(t,
		domain.Keyword{ID: "k1", Text: "cat", Color: "#FFFF00", Enabled: true},
		domain.Keyword{ID: "k2", Text: "dog", Color: "#FFFF00", Enabled: true},
	)
	ctx := context.Background()

	text := "kitten"
	kw, err := service.Update(ctx, "k1", domain.KeywordUpdate{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "kitten", kw.Text)
	assert.False(t, kw.LastUsed.IsZero())

	taken := "dog"
	_, err = service.Update(ctx, "k1", domain.KeywordUpdate{Text: &taken})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = service.Update(ctx, "missing", domain.KeywordUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKeywordService_ToggleAndSetColor(t *testing.T) {
	service, _ := newKeywordService(t, domain.Keyword{ID: "k1", Text: "cat", Color: "#FFFF00", Enabled: true})
	ctx := context.Background()

	require.NoError(t, service.Toggle(ctx, "cat", false))
	require.NoError(t, service.SetColor(ctx, "cat", "Pink"))

	kw, err := service.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, kw.Enabled)
	assert.Equal(t, "#F472B6", kw.Color)

	assert.ErrorIs(t, service.SetColor(ctx, "cat", "#12345"), domain.ErrInvalidColor)
}

func TestKeywordService_Delete(t *testing.T) {
	service, _ := newKeywordService(t,
		domain.Keyword{ID: "k1", Text: "cat"},
		domain.Keyword{ID: "k2", Text: "dog"},
	)
	ctx := context.Background()

	require.NoError(t, service.Delete(ctx, "cat"))
	keywords, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog"}, texts(keywords))

	assert.ErrorIs(t, service.Delete(ctx, "cat"), domain.ErrNotFound)
}

func TestKeywordService_Reorder(t *testing.T) {
	service, _ := newKeywordService(t,
		domain.Keyword{ID: "a", Text: "cat"},
		domain.Keyword{ID: "b", Text: "dog"},
		domain.Keyword{ID: "c", Text: "bird"},
	)
	ctx := context.Background()

	require.NoError(t, service.Reorder(ctx, []string{"c", "a", "b"}))
	keywords, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bird", "cat", "dog"}, texts(keywords))

	assert.ErrorIs(t, service.Reorder(ctx, []string{"a", "b"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Reorder(ctx, []string{"a", "a", "b"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Reorder(ctx, []string{"a", "b", "x"}), domain.ErrInvalidInput)
}

func TestKeywordService_Move(t *testing.T) {
	service, _ := newKeywordService(t,
		domain.Keyword{ID: "a", Text: "cat"},
		domain.Keyword{ID: "b", Text: "dog"},
		domain.Keyword{ID: "c", Text: "bird"},
	)
	ctx := context.Background()

	require.NoError(t, service.Move(ctx, "bird", 0))
	keywords, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bird", "cat", "dog"}, texts(keywords))

	require.NoError(t, service.Move(ctx, "bird", 99))
	keywords, err = service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog", "bird"}, texts(keywords))

	assert.ErrorIs(t, service.Move(ctx, "cat", -1), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Move(ctx, "fish", 0), domain.ErrNotFound)
}

func TestKeywordService_Import(t *testing.T) {
	service, _ := newKeywordService(t, domain.Keyword{ID: "a", Text: "cat", Color: "#FFFF00"})
	ctx := context.Background()

	added, err := service.Import(ctx, []domain.Keyword{
		{Text: "cat"},
		{Text: "dog", Color: "orange"},
		{ID: "a", Text: "bird", Color: "#67E8F9", Enabled: true},
	}, false)

	require.NoError(t, err)
	assert.Equal(t, 2, added)
	keywords, err := service.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"cat", "dog", "bird"}, texts(keywords))
	assert.Equal(t, "#FB923C", keywords[1].Color)
	assert.NotEqual(t, "a", keywords[2].ID)
	assert.True(t, keywords[2].Enabled)
}

func TestKeywordService_Import_Replace(t *testing.T) {
	service, _ := newKeywordService(t, domain.Keyword{ID: "a", Text: "cat"})
	ctx := context.Background()

	added, err := service.Import(ctx, []domain.Keyword{{ID: "a", Text: "dog", Color: "#FFFF00"}}, true)

	require.NoError(t, err)
	assert.Equal(t, 1, added)
	keywords, err := service.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog"}, texts(keywords))
	assert.Equal(t, "a", keywords[0].ID)
}

func TestKeywordService_Import_RejectsEmptyText(t *testing.T) {
	service, store := newKeywordService(t, domain.Keyword{ID: "a", Text: "cat"})

	_, err := service.Import(context.Background(), []domain.Keyword{{Text: "dog"}, {Text: " "}}, false)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	keywords, listErr := store.List(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, keywords, 1)
}

func TestKeywordService_StoreFailure(t *testing.T) {
	service := NewKeywordService(failingStore{}, nil)
	ctx := context.Background()

	_, err := service.List(ctx)
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.ErrorIs(t, err, errBackendDown)

	_, err = service.Add(ctx, "cat", "")
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestKeywordService_NilStore(t *testing.T) {
	service := NewKeywordService(nil, nil)

	_, err := service.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Delete(context.Background(), "cat"), domain.ErrNotImplemented)
}
