// Package domain defines the core business entities for Hilite.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Keyword: A stored keyword with its colour and enabled flag
//   - KeywordChange: An old/new pair delivered when the keyword list changes
//   - Node: A mutable document tree of containers, text, and markers
//   - AppSettings: Highlight, storage, and watch configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
