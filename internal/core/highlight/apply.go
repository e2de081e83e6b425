package highlight

import (
	"fmt"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// Pass is the outcome of applying one keyword.
type Pass struct {
	KeywordID string
	Text      string
	Color     string

	// Count is the number of markers inserted by this pass.
	Count int

	// Err is set when the pass was rejected, skipped nodes, or panicked.
	// Markers inserted before a failure remain in the tree.
	Err error
}

// Result is the outcome of ApplyAll.
type Result struct {
	// Cleared is the number of markers removed before applying.
	Cleared int

	// Total is the number of markers inserted across all passes.
	Total int

	// Passes holds one entry per enabled keyword, in application order.
	Passes []Pass
}

// Failed returns the passes that reported an error.
func (r Result) Failed() []Pass {
	var failed []Pass
	for _, p := range r.Passes {
		if p.Err != nil {
			failed = append(failed, p)
		}
	}
	return failed
}

// Merge adds the counts and passes of other to r.
func (r *Result) Merge(other Result) {
	r.Cleared += other.Cleared
	r.Total += other.Total
	r.Passes = append(r.Passes, other.Passes...)
}

// ApplyAll clears every marker under root, then highlights each enabled
// keyword in list order. Disabled keywords are skipped.
//
// A failing pass does not stop the remaining ones; its error is recorded
// in the returned Result.
func ApplyAll(root *domain.Node, keywords []domain.Keyword, opts Options) Result {
	res := Result{Cleared: Clear(root)}

	enabled := domain.EnabledKeywords(keywords)
	res.Passes = make([]Pass, 0, len(enabled))
	for i := range enabled {
		p := runPass(root, enabled[i], opts)
		res.Total += p.Count
		res.Passes = append(res.Passes, p)
	}
	return res
}

// ApplyIncremental highlights a single keyword against the current tree
// without clearing existing markers of any keyword.
func ApplyIncremental(root *domain.Node, keyword domain.Keyword, opts Options) Pass {
	return runPass(root, keyword, opts)
}

// runPass highlights one keyword, converting a panic into a pass error.
func runPass(root *domain.Node, keyword domain.Keyword, opts Options) (p Pass) {
	p = Pass{
		KeywordID: keyword.ID,
		Text:      keyword.Text,
		Color:     keyword.Color,
	}
	defer func() {
		if r := recover(); r != nil {
			p.Err = fmt.Errorf("keyword %q: pass aborted: %v", keyword.Text, r)
		}
	}()

	p.Count, p.Err = Highlight(root, keyword.Text, keyword.Color, opts)
	return p
}
