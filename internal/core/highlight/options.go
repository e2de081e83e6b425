package highlight

import (
	"strings"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// Options tunes a highlight pass.
type Options struct {
	// ExcludedTags lists container tags whose subtrees are never scanned.
	// Comparison is case-insensitive.
	ExcludedTags []string
}

// DefaultOptions returns options excluding script, style, and mark containers.
func DefaultOptions() Options {
	return Options{ExcludedTags: domain.DefaultExcludedTags()}
}

// excludes reports whether a container with tag is pruned from scans.
func (o Options) excludes(tag string) bool {
	if tag == "" {
		return false
	}
	for _, t := range o.ExcludedTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
