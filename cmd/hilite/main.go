// Command hilite highlights keywords in HTML documents.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/metrics"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/notify/filewatch"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/core/services"
	"github.com/custodia-labs/hilite-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// redisPasswordEnv holds the Redis password; it is never written to the config file.
const redisPasswordEnv = "HILITE_REDIS_PASSWORD"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceFactory(newServices)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// keywordBackend is a keyword store together with its change feed.
type keywordBackend struct {
	store    driven.KeywordStore
	notifier driven.ChangeNotifier
	close    func() error
}

// newServices wires the services for one invocation.
func newServices(opts cli.Options) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	backend, err := openBackend(settings.Storage, opts.DataDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("keyword store: %s", settings.Storage.Backend.Description())

	recorder := metrics.New()
	highlightService := services.NewHighlightService(backend.store, settingsService)
	highlightService.SetMetrics(recorder)
	keywordService := services.NewKeywordService(backend.store, settingsService)

	svc := &cli.Services{
		Keyword:   keywordService,
		Highlight: highlightService,
		Document:  services.NewDocumentService(highlightService, keywordService, settingsService),
		Settings:  settingsService,
		Watcher:   services.NewWatcher(highlightService, backend.notifier, settingsService),
		Metrics:   recorder,
		Changes:   backend.notifier,
	}

	cleanup := func() {
		if err := backend.close(); err != nil {
			logger.Warn("closing keyword store: %v", err)
		}
	}
	return svc, cleanup, nil
}

// openBackend opens the configured keyword store.
func openBackend(cfg domain.StorageSettings, dataDir string) (*keywordBackend, error) {
	switch cfg.Backend {
	case domain.StorageBackendRedis:
		store, err := redis.NewStore(redis.Config{
			Addr:     cfg.RedisAddr,
			Password: os.Getenv(redisPasswordEnv),
			Key:      cfg.RedisKey,
		})
		if err != nil {
			return nil, fmt.Errorf("opening redis store: %w", err)
		}
		return &keywordBackend{store: store, notifier: store, close: store.Close}, nil

	case domain.StorageBackendMemory:
		store := memory.NewKeywordStore()
		return &keywordBackend{store: store, notifier: store, close: func() error { return nil }}, nil

	default:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening keyword database: %w", err)
		}
		notifier := filewatch.NewNotifier(store, store.Path(), filewatch.DefaultDebounce)
		return &keywordBackend{store: store, notifier: notifier, close: store.Close}, nil
	}
}
