package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hilite-cli/internal/logger"
)

// Ensure HighlightService implements the interface.
var _ driving.HighlightService = (*HighlightService)(nil)

// HighlightService applies keywords to document trees and logs each pass.
// Pass failures are logged and never abort the remaining passes.
type HighlightService struct {
	store    driven.KeywordStore
	settings driving.SettingsService
	metrics  driven.HighlightMetrics
}

// NewHighlightService creates a new highlight service.
// settings may be nil, in which case highlight.DefaultOptions is used.
func NewHighlightService(store driven.KeywordStore, settings driving.SettingsService) *HighlightService {
	return &HighlightService{
		store:    store,
		settings: settings,
	}
}

// SetMetrics sets the metrics recorder. nil disables recording.
func (s *HighlightService) SetMetrics(metrics driven.HighlightMetrics) {
	s.metrics = metrics
}

// ApplyAll clears all markers under root and applies the stored keywords.
func (s *HighlightService) ApplyAll(ctx context.Context, root *domain.Node) (highlight.Result, error) {
	keywords, storeErr := s.Keywords(ctx)
	return s.ApplyKeywords(ctx, root, keywords), storeErr
}

// Keywords reads the stored keyword list.
func (s *HighlightService) Keywords(ctx context.Context) ([]domain.Keyword, error) {
	var storeErr error
	var keywords []domain.Keyword
	if s.store == nil {
		storeErr = domain.ErrNotImplemented
	} else {
		keywords, storeErr = s.store.List(ctx)
	}
	if storeErr != nil {
		logger.Error("reading keywords failed, applying empty list: %v", storeErr)
		return nil, fmt.Errorf("%w: %w", domain.ErrStore, storeErr)
	}
	return keywords, nil
}

// ApplyKeywords clears all markers under root and applies the enabled keywords in order.
func (s *HighlightService) ApplyKeywords(
	_ context.Context,
	root *domain.Node,
	keywords []domain.Keyword,
) highlight.Result {
	logger.Section("Apply Keywords")
	start := time.Now()

	enabled := domain.EnabledKeywords(keywords)
	logger.Info("keywords: %d stored, %d enabled", len(keywords), len(enabled))

	res := highlight.ApplyAll(root, enabled, s.options())
	logger.Debug("cleared %d existing markers", res.Cleared)
	for _, p := range res.Passes {
		s.logPass(p)
	}
	logger.Info("total markers: %d (%s)", res.Total, time.Since(start).Round(time.Microsecond))

	if s.metrics != nil {
		s.metrics.ObserveApply(res.Cleared, res.Total, time.Since(start))
	}
	return res
}

// ApplyIncremental applies one keyword without clearing existing markers.
func (s *HighlightService) ApplyIncremental(
	_ context.Context,
	root *domain.Node,
	keyword domain.Keyword,
) highlight.Pass {
	p := highlight.ApplyIncremental(root, keyword, s.options())
	s.logPass(p)
	return p
}

// Clear removes every marker under root.
func (s *HighlightService) Clear(_ context.Context, root *domain.Node) int {
	removed := highlight.Clear(root)
	logger.Debug("removed %d markers", removed)
	return removed
}

// logPass logs a pass outcome and records it in metrics.
func (s *HighlightService) logPass(p highlight.Pass) {
	if p.Err != nil {
		logger.Error("keyword %q: %v", p.Text, p.Err)
	}
	logger.Debug("keyword %q (%s): %d markers", p.Text, p.Color, p.Count)
	if s.metrics != nil {
		s.metrics.ObservePass(p.Text, p.Count, p.Err)
	}
}

// options returns the scan options from settings.
func (s *HighlightService) options() highlight.Options {
	if s.settings == nil {
		return highlight.DefaultOptions()
	}
	return s.settings.HighlightOptions()
}
