package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hilite-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService highlights documents read from streams.
type DocumentService struct {
	highlighter driving.HighlightService
	keywords    driving.KeywordService
	settings    driving.SettingsService
}

// NewDocumentService creates a new document service.
// keywords and settings may be nil; Only then always means ad-hoc text.
func NewDocumentService(
	highlighter driving.HighlightService,
	keywords driving.KeywordService,
	settings driving.SettingsService,
) *DocumentService {
	return &DocumentService{
		highlighter: highlighter,
		keywords:    keywords,
		settings:    settings,
	}
}

// Process parses, highlights and renders one document.
func (s *DocumentService) Process(
	ctx context.Context,
	parser driven.DocumentParser,
	renderer driven.DocumentRenderer,
	r io.Reader,
	w io.Writer,
	req domain.DocumentRequest,
) (highlight.Result, error) {
	if s.highlighter == nil {
		return highlight.Result{}, domain.ErrNotImplemented
	}

	scopes, err := s.parse(parser, r, req.Selector)
	if err != nil {
		return highlight.Result{}, err
	}
	root := scopes.root
	logger.Debug("document parsed, %d scope(s)", len(scopes.nodes))

	var res highlight.Result
	var applyErr error
	switch {
	case req.Clear:
		for _, scope := range scopes.nodes {
			res.Cleared += s.highlighter.Clear(ctx, scope)
		}

	case req.Only != "":
		kw, err := s.resolveOnly(ctx, req)
		if err != nil {
			return highlight.Result{}, err
		}
		for _, scope := range scopes.nodes {
			p := s.highlighter.ApplyIncremental(ctx, scope, kw)
			res.Total += p.Count
			res.Passes = append(res.Passes, p)
		}

	default:
		var keywords []domain.Keyword
		keywords, applyErr = s.highlighter.Keywords(ctx)
		for _, scope := range scopes.nodes {
			res.Merge(s.highlighter.ApplyKeywords(ctx, scope, keywords))
		}
	}

	if err := renderer.Render(w, root); err != nil {
		return res, fmt.Errorf("rendering document: %w", err)
	}
	return res, applyErr
}

// parsedScopes is a parsed root with the containers to process.
type parsedScopes struct {
	root  *domain.Node
	nodes []*domain.Node
}

// parse reads the document and resolves the selector.
func (s *DocumentService) parse(
	parser driven.DocumentParser,
	r io.Reader,
	selector string,
) (parsedScopes, error) {
	if selector == "" {
		root, err := parser.Parse(r)
		if err != nil {
			return parsedScopes{}, fmt.Errorf("parsing document: %w", err)
		}
		return parsedScopes{root: root, nodes: []*domain.Node{root}}, nil
	}

	scoped, ok := parser.(driven.ScopedParser)
	if !ok {
		return parsedScopes{}, fmt.Errorf("selectors need an html document: %w", domain.ErrUnsupportedFormat)
	}
	root, nodes, err := scoped.ParseScoped(r, selector)
	if err != nil {
		return parsedScopes{}, fmt.Errorf("parsing document: %w", err)
	}
	if len(nodes) == 0 {
		logger.Warn("selector %q matched nothing", selector)
	}
	return parsedScopes{root: root, nodes: nodes}, nil
}

// resolveOnly finds the stored keyword named by req.Only, or builds an
// ad-hoc keyword from it. req.Color overrides the keyword colour.
func (s *DocumentService) resolveOnly(ctx context.Context, req domain.DocumentRequest) (domain.Keyword, error) {
	kw := domain.Keyword{Text: req.Only, Color: s.defaultColor(), Enabled: true}

	if s.keywords != nil {
		stored, err := s.keywords.Get(ctx, req.Only)
		switch {
		case err == nil:
			kw = *stored
		case errors.Is(err, domain.ErrNotFound):
			logger.Debug("%q is not a stored keyword, applying as given", req.Only)
		default:
			return domain.Keyword{}, err
		}
	}

	if req.Color != "" {
		color := domain.ResolveColor(req.Color)
		if err := domain.ValidateColor(color); err != nil {
			return domain.Keyword{}, fmt.Errorf("%q: %w", req.Color, err)
		}
		kw.Color = color
	}
	return kw, nil
}

// defaultColor returns the configured colour for ad-hoc keywords.
func (s *DocumentService) defaultColor() string {
	if s.settings == nil {
		return domain.DefaultColor
	}
	settings, err := s.settings.Get()
	if err != nil || settings.Highlight.DefaultColor == "" {
		return domain.DefaultColor
	}
	return settings.Highlight.DefaultColor
}
