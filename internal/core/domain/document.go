package domain

// DocumentRequest selects what is done to a document.
type DocumentRequest struct {
	// Selector limits processing to matching containers. Empty means the
	// whole document.
	Selector string

	// Only applies a single keyword incrementally instead of the whole
	// list. It may name a stored keyword by ID or text, or be ad-hoc text.
	Only string

	// Color overrides the colour used with Only.
	Color string

	// Clear removes markers without applying any keyword.
	Clear bool
}
