package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hilite-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	dataDir   string
)

// Services used by the commands. They are set by the service factory
// before any command runs.
var (
	keywordService   driving.KeywordService
	highlightService driving.HighlightService
	documentService  driving.DocumentService
	settingsService  driving.SettingsService
	watcher          driving.Watcher
	metricsRecorder  MetricsServer
	keywordChanges   driven.ChangeNotifier
)

// MetricsServer exposes highlight metrics over HTTP.
type MetricsServer interface {
	driven.HighlightMetrics
	Serve(ctx context.Context, addr string) error
}

// Options carries the global flags to the service factory.
type Options struct {
	ConfigDir string
	DataDir   string
}

// Services is the set of services the commands run against.
type Services struct {
	Keyword   driving.KeywordService
	Highlight driving.HighlightService
	Document  driving.DocumentService
	Settings  driving.SettingsService
	Watcher   driving.Watcher
	Metrics   MetricsServer
	// Changes reports edits made by other processes. It may be nil.
	Changes driven.ChangeNotifier
}

// ServiceFactory builds the services for one invocation. The returned
// cleanup function releases stores and connections.
type ServiceFactory func(opts Options) (*Services, func(), error)

var (
	serviceFactory ServiceFactory
	cleanup        func()
)

var rootCmd = &cobra.Command{
	Use:   "hilite",
	Short: "Highlight keywords in HTML documents",
	Long: `Hilite keeps an ordered list of keywords, each with a colour, and
wraps every occurrence of them in HTML documents in a coloured marker.

Keywords are applied in list order; text already inside a marker is never
matched again. Markers can be removed again without changing the text.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		teardown()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print each highlight pass to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.hilite)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "keyword database directory (default ~/.hilite/data)")
}

// SetServiceFactory registers the function that builds the services.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer teardown()
	return rootCmd.ExecuteContext(ctx)
}

// setServices installs services directly. Tests use it in place of a factory.
func setServices(s *Services) {
	keywordService = s.Keyword
	highlightService = s.Highlight
	documentService = s.Document
	settingsService = s.Settings
	watcher = s.Watcher
	metricsRecorder = s.Metrics
	keywordChanges = s.Changes
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if serviceFactory == nil || cmd.Name() == "version" {
		return nil
	}

	services, release, err := serviceFactory(Options{ConfigDir: configDir, DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("starting services: %w", err)
	}
	setServices(services)
	cleanup = release
	return nil
}

func teardown() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}
