package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/document/htmldoc"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
	"github.com/custodia-labs/hilite-cli/internal/logger"
)

var (
	watchFlags       documentFlags
	watchMetricsAddr string
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-highlight a document whenever the keyword list changes",
	Long: `Highlight an HTML document, then keep it up to date: every time a
keyword is added, removed, reordered, or recoloured, from this machine or,
with the redis store, from any other, the document is highlighted again and
rewritten.

The selector, when given, must match exactly one element.

Press Ctrl+C to stop.

Examples:
  hilite watch page.html -o page.highlighted.html
  hilite watch page.html -o out.html --metrics-addr :9090`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchFlags.output, "output", "o", "", "file rewritten after every change (required)")
	watchCmd.Flags().StringVarP(&watchFlags.selector, "selector", "s", "", "CSS selector of the element to highlight")
	watchCmd.Flags().BoolVar(&watchFlags.fragment, "fragment", false, "treat the input as an HTML fragment")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	_ = watchCmd.MarkFlagRequired("output") //nolint:errcheck // flag is defined above
	rootCmd.AddCommand(watchCmd)
}

var errWatcherNotConfigured = errors.New("watcher not configured")

func runWatch(cmd *cobra.Command, args []string) error {
	if watcher == nil {
		return errWatcherNotConfigured
	}
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	input, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	parser := htmldoc.NewParser(markerClass(), watchFlags.fragment)
	watchFlags.input = formatHTML
	selector := defaultSelector(watchFlags)

	var doc, scope *domain.Node
	if selector == "" {
		doc, err = parser.Parse(bytes.NewReader(input))
		scope = doc
	} else {
		var scopes []*domain.Node
		doc, scopes, err = parser.ParseScoped(bytes.NewReader(input), selector)
		if err == nil && len(scopes) != 1 {
			err = fmt.Errorf("selector %q matches %d elements, watch needs exactly one: %w",
				selector, len(scopes), domain.ErrInvalidInput)
		}
		if err == nil {
			scope = scopes[0]
		}
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	var wg sync.WaitGroup
	if watchMetricsAddr != "" && metricsRecorder != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := metricsRecorder.Serve(ctx, watchMetricsAddr); err != nil {
				logger.Error("%v", err)
			}
		}()
	}

	renderer := htmldoc.NewRenderer(markerClass())
	onApplied := func(res highlight.Result) {
		var out bytes.Buffer
		if err := renderer.Render(&out, doc); err != nil {
			logger.Error("rendering %s: %v", watchFlags.output, err)
			return
		}
		if err := writeOutput(cmd, watchFlags.output, out.Bytes()); err != nil {
			logger.Error("%v", err)
			return
		}
		for _, p := range res.Failed() {
			cmd.PrintErrf("warning: keyword %q: %v\n", p.Text, p.Err)
		}
		cmd.PrintErrf("Wrote %s: %d markers\n", watchFlags.output, res.Total)
	}

	cmd.PrintErrf("Watching keywords for %s (Ctrl+C to stop)\n", args[0])
	err = watcher.Run(ctx, scope, onApplied)
	cancel()
	wg.Wait()
	return err
}
