// Package mcp provides an MCP (Model Context Protocol) server adapter for Hilite.
// It lets AI assistants manage the keyword list and highlight HTML.
package mcp

import "errors"

// Errors returned by Ports.Validate.
var (
	ErrMissingKeywordService  = errors.New("mcp: keyword service is required")
	ErrMissingDocumentService = errors.New("mcp: document service is required")
	ErrMissingHTMLAdapters    = errors.New("mcp: html parser and renderer are required")
)
