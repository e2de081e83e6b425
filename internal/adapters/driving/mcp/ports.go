package mcp

import (
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Keyword manages the keyword list.
	Keyword driving.KeywordService

	// Document highlights documents.
	Document driving.DocumentService

	// Parser and Renderer read and write the HTML passed to tools.
	Parser   driven.ScopedParser
	Renderer driven.DocumentRenderer
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Keyword == nil {
		return ErrMissingKeywordService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Parser == nil || p.Renderer == nil {
		return ErrMissingHTMLAdapters
	}
	return nil
}
