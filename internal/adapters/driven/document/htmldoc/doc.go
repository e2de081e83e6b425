// Package htmldoc reads and writes HTML documents as domain node trees.
//
// Elements become containers, text becomes text nodes, and comments and
// doctypes become raw nodes. A <mark> element carrying the marker class is
// read back as a single marker node, so previously highlighted output can be
// cleared or re-highlighted.
package htmldoc
