package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/services"
)

// testServices holds the stores behind the installed services.
type testServices struct {
	store  *memory.KeywordStore
	config *memory.ConfigStore
}

// setupTestServices installs real services over in-memory stores and
// restores the previous services when the test ends.
func setupTestServices(t *testing.T, keywords ...domain.Keyword) *testServices {
	t.Helper()

	previous := &Services{
		Keyword:   keywordService,
		Highlight: highlightService,
		Document:  documentService,
		Settings:  settingsService,
		Watcher:   watcher,
		Metrics:   metricsRecorder,
		Changes:   keywordChanges,
	}
	t.Cleanup(func() { setServices(previous) })

	store := memory.NewKeywordStore(keywords...)
	config := memory.NewConfigStore(map[string]any{"watch.min_interval_ms": 1})
	settings := services.NewSettingsService(config)
	keywordSvc := services.NewKeywordService(store, settings)
	highlighter := services.NewHighlightService(store, settings)

	setServices(&Services{
		Keyword:   keywordSvc,
		Highlight: highlighter,
		Document:  services.NewDocumentService(highlighter, keywordSvc, settings),
		Settings:  settings,
		Watcher:   services.NewWatcher(highlighter, store, settings),
		Changes:   store,
	})
	resetFlags()
	return &testServices{store: store, config: config}
}

// resetFlags clears flag variables left over from earlier executions.
func resetFlags() {
	keywordColor, keywordJSON = "", false
	importReplace, importFormat = false, ""
	exportFormat, exportFilePath = "yaml", ""
	highlightFlags = documentFlags{input: formatHTML}
	highlightOnly, highlightColor = "", ""
	clearFlags = documentFlags{input: formatHTML}
	watchFlags = documentFlags{}
	watchMetricsAddr = ""
	for _, cmd := range []*cobra.Command{keywordExportCmd, keywordImportCmd, highlightCmd, clearCmd} {
		cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

// executeCommand runs the root command with args and returns its combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandContext(context.Background(), t, args...)
}

func executeCommandContext(ctx context.Context, t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func mustList(t *testing.T, s *testServices) []domain.Keyword {
	t.Helper()
	keywords, err := s.store.List(context.Background())
	require.NoError(t, err)
	return keywords
}
