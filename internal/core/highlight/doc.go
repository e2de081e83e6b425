// Package highlight implements keyword highlighting over a domain.Node tree.
//
// Three procedures form the core:
//
//   - Match scans a tree once and collects the text nodes containing a target
//   - Splice replaces each collected node with text parts and markers
//   - Clear collapses every marker back into plain text and normalises
//
// ApplyAll and ApplyIncremental drive them for a list of keywords. Keywords
// are applied sequentially in list order, so later passes see the tree as
// left by earlier ones. Markers are leaves and are never matched again.
//
// Every function takes its inputs as arguments and holds no package state,
// so the tree can be any caller-owned value, including one built in a test.
// Functions in this package never log; failures are returned to the caller.
package highlight
