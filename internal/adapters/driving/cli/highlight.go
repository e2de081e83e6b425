package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/document/ansi"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/document/htmldoc"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/document/text"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
	"github.com/custodia-labs/hilite-cli/internal/core/highlight"
	"github.com/custodia-labs/hilite-cli/internal/core/ports/driven"
)

// Output formats.
const (
	formatHTML = "html"
	formatANSI = "ansi"
	formatText = "text"
)

// documentFlags are shared by the highlight, clear, and watch commands.
type documentFlags struct {
	output   string
	format   string
	input    string
	selector string
	fragment bool
}

var (
	highlightFlags documentFlags
	highlightOnly  string
	highlightColor string
	clearFlags     documentFlags
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <file|->",
	Short: "Highlight keywords in a document",
	Long: `Highlight every enabled keyword in an HTML document.

Existing markers are removed first, then keywords are applied in list order.
With --only, a single keyword is added on top of the existing markers; it
may be a stored keyword (ID or text) or any other text.

Output is HTML, or coloured text when writing to a terminal.

Examples:
  hilite highlight page.html -o page.html
  hilite highlight page.html --selector article
  curl -s https://example.com | hilite highlight - --format ansi
  hilite highlight notes.html --only TODO --color orange`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlight,
}

var clearCmd = &cobra.Command{
	Use:   "clear <file|->",
	Short: "Remove all markers from a document",
	Long:  `Remove every marker, restoring the document text to what it was before highlighting.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runClear,
}

func init() {
	addDocumentFlags(highlightCmd, &highlightFlags)
	highlightCmd.Flags().StringVar(&highlightOnly, "only", "", "apply only this keyword, keeping existing markers")
	highlightCmd.Flags().StringVar(&highlightColor, "color", "", "colour for --only (default: stored or default colour)")
	addDocumentFlags(clearCmd, &clearFlags)

	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(clearCmd)
}

func addDocumentFlags(cmd *cobra.Command, flags *documentFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: html, ansi, text (default html, ansi on a terminal)")
	cmd.Flags().StringVar(&flags.input, "input", formatHTML, "input format: html or text")
	cmd.Flags().StringVarP(&flags.selector, "selector", "s", "", "CSS selector limiting where markers are placed")
	cmd.Flags().BoolVar(&flags.fragment, "fragment", false, "treat the input as an HTML fragment")
}

var errDocumentNotConfigured = errors.New("document service not configured")

func runHighlight(cmd *cobra.Command, args []string) error {
	return processDocument(cmd, args[0], highlightFlags, domain.DocumentRequest{
		Only:  highlightOnly,
		Color: highlightColor,
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	return processDocument(cmd, args[0], clearFlags, domain.DocumentRequest{Clear: true})
}

func processDocument(cmd *cobra.Command, path string, flags documentFlags, req domain.DocumentRequest) error {
	if documentService == nil {
		return errDocumentNotConfigured
	}

	parser, err := newParser(flags)
	if err != nil {
		return err
	}
	renderer, err := newRenderer(cmd, flags)
	if err != nil {
		return err
	}
	req.Selector = defaultSelector(flags)

	input, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	res, procErr := documentService.Process(cmd.Context(), parser, renderer, bytes.NewReader(input), &out, req)
	if procErr != nil && out.Len() == 0 {
		return fmt.Errorf("failed to process %s: %w", path, procErr)
	}

	if err := writeOutput(cmd, flags.output, out.Bytes()); err != nil {
		return err
	}
	reportResult(cmd, res, req, flags.output != "")

	if procErr != nil {
		return fmt.Errorf("keywords not applied: %w", procErr)
	}
	return nil
}

// defaultSelector limits full HTML documents to their body.
func defaultSelector(flags documentFlags) string {
	if flags.selector != "" {
		return flags.selector
	}
	if flags.input == formatHTML && !flags.fragment {
		return "body"
	}
	return ""
}

func newParser(flags documentFlags) (driven.DocumentParser, error) {
	switch strings.ToLower(flags.input) {
	case formatHTML, "":
		return htmldoc.NewParser(markerClass(), flags.fragment), nil
	case formatText:
		return text.Parser{}, nil
	default:
		return nil, fmt.Errorf("input %q: %w", flags.input, domain.ErrUnsupportedFormat)
	}
}

func newRenderer(cmd *cobra.Command, flags documentFlags) (driven.DocumentRenderer, error) {
	format := strings.ToLower(flags.format)
	if format == "" {
		format = formatHTML
		if flags.output == "" && isTerminal(cmd.OutOrStdout()) {
			format = formatANSI
		}
	}

	switch format {
	case formatHTML:
		return htmldoc.NewRenderer(markerClass()), nil
	case formatANSI:
		return ansi.NewRenderer(false), nil
	case formatText:
		return text.NewRenderer(text.Brackets), nil
	default:
		return nil, fmt.Errorf("format %q: %w", flags.format, domain.ErrUnsupportedFormat)
	}
}

// markerClass returns the configured marker class.
func markerClass() string {
	if settingsService == nil {
		return domain.DefaultMarkerClass
	}
	settings, err := settingsService.Get()
	if err != nil || settings.Highlight.MarkerClass == "" {
		return domain.DefaultMarkerClass
	}
	return settings.Highlight.MarkerClass
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readInput reads the whole document so the output may overwrite the input file.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // documents are not secret
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// reportResult prints failed passes, and a summary when the document went to a file.
func reportResult(cmd *cobra.Command, res highlight.Result, req domain.DocumentRequest, toFile bool) {
	for _, p := range res.Failed() {
		cmd.PrintErrf("warning: keyword %q: %v\n", p.Text, p.Err)
	}
	if !toFile {
		return
	}
	if req.Clear {
		cmd.PrintErrf("Removed %d markers\n", res.Cleared)
		return
	}
	cmd.PrintErrf("Placed %d markers for %d keywords\n", res.Total, len(res.Passes))
}
