package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
)

// DocumentService highlights whole documents read from and written to streams.
type DocumentService interface {
	// Process parses r with parser, applies req, and renders the result to
	// w with renderer. The document is rendered even when reading the
	// keyword list fails; that error is returned after rendering.
	Process(
		ctx context.Context,
		parser driven.DocumentParser,
		renderer driven.DocumentRenderer,
		r io.Reader,
		w io.Writer,
		req domain.DocumentRequest,
	) (highlight.Result, error)
}
