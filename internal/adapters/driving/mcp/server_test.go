package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/document/htmldoc"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/services"
)

// newTestPorts wires real services over in-memory stores.
func newTestPorts(keywords ...domain.Keyword) *Ports {
	store := memory.NewKeywordStore(keywords...)
	settings := services.NewSettingsService(memory.NewConfigStore())
	keywordService := services.NewKeywordService(store, settings)
	return &Ports{
		Keyword: keywordService,
		Document: services.NewDocumentService(
			services.NewHighlightService(store, settings), keywordService, settings),
		Parser:   htmldoc.NewParser("", true),
		Renderer: htmldoc.NewRenderer(""),
	}
}

func newTestServer(t *testing.T, keywords ...domain.Keyword) *Server {
	t.Helper()
	server, err := NewServer(newTestPorts(keywords...))
	require.NoError(t, err)
	return server
}

func TestNewServer(t *testing.T) {
	t.Run("missing ports returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingKeywordService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(newTestPorts())
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	full := newTestPorts()

	t.Run("all ports is valid", func(t *testing.T) {
		assert.NoError(t, full.Validate())
	})

	t.Run("missing document service", func(t *testing.T) {
		ports := *full
		ports.Document = nil
		assert.ErrorIs(t, ports.Validate(), ErrMissingDocumentService)
	})

	t.Run("missing renderer", func(t *testing.T) {
		ports := *full
		ports.Renderer = nil
		assert.ErrorIs(t, ports.Validate(), ErrMissingHTMLAdapters)
	})
}

func TestRunHTTP_StopsOnCancel(t *testing.T) {
	server := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := server.RunHTTP(ctx, "127.0.0.1:0")

	assert.NoError(t, err)
}
