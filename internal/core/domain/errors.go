package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	// An empty keyword text is rejected with this error before any scan.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidColor indicates a colour value is not a hex colour.
	ErrInvalidColor = errors.New("invalid colour")

	// ErrUnsupportedFormat indicates an unknown document or transfer format.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// Highlight Errors.

	// ErrDetachedNode indicates a matched node lost its parent before it
	// could be replaced. The node is skipped and the pass continues.
	ErrDetachedNode = errors.New("node has no parent")

	// Store Errors.

	// ErrStore indicates the keyword store could not be read or written.
	// Highlighting falls back to an empty keyword list.
	ErrStore = errors.New("keyword store unavailable")
)
