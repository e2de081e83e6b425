package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driven/transfer"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

var (
	keywordColor   string
	keywordJSON    bool
	importReplace  bool
	importFormat   string
	exportFormat   string
	exportFilePath string
)

var keywordCmd = &cobra.Command{
	Use:     "keyword",
	Aliases: []string{"kw"},
	Short:   "Manage the keyword list",
	Long: `Add, remove, and reorder the keywords that are highlighted.

Keywords are matched exactly and case-sensitively, and are applied in list
order. A keyword can be referenced by its ID or by its text.`,
}

var keywordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List keywords in application order",
	Args:  cobra.NoArgs,
	RunE:  runKeywordList,
}

var keywordAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywordAdd,
}

var keywordRemoveCmd = &cobra.Command{
	Use:     "remove <keyword>",
	Aliases: []string{"rm"},
	Short:   "Remove a keyword",
	Args:    cobra.ExactArgs(1),
	RunE:    runKeywordRemove,
}

var keywordEnableCmd = &cobra.Command{
	Use:   "enable <keyword>",
	Short: "Enable a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeywordToggle(cmd, args[0], true)
	},
}

var keywordDisableCmd = &cobra.Command{
	Use:   "disable <keyword>",
	Short: "Disable a keyword without removing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeywordToggle(cmd, args[0], false)
	},
}

var keywordColorCmd = &cobra.Command{
	Use:   "color <keyword> <colour>",
	Short: "Change the colour of a keyword",
	Args:  cobra.ExactArgs(2),
	RunE:  runKeywordColor,
}

var keywordMoveCmd = &cobra.Command{
	Use:   "move <keyword> <position>",
	Short: "Move a keyword to a 1-based position in the list",
	Args:  cobra.ExactArgs(2),
	RunE:  runKeywordMove,
}

var keywordReorderCmd = &cobra.Command{
	Use:   "reorder <keyword>...",
	Short: "Set the full application order",
	Long:  `Set the application order. Every keyword must be named exactly once.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runKeywordReorder,
}

var keywordImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import keywords from a YAML or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywordImport,
}

var keywordExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export keywords as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runKeywordExport,
}

func init() {
	keywordListCmd.Flags().BoolVar(&keywordJSON, "json", false, "output keywords as JSON")
	keywordAddCmd.Flags().StringVarP(&keywordColor, "color", "c", "", "hex colour or preset name (default from settings)")
	keywordImportCmd.Flags().BoolVar(&importReplace, "replace", false, "replace the stored list instead of merging")
	keywordImportCmd.Flags().StringVar(&importFormat, "format", "", "yaml or json (default from file extension)")
	keywordExportCmd.Flags().StringVar(&exportFormat, "format", "yaml", "yaml or json")
	keywordExportCmd.Flags().StringVarP(&exportFilePath, "output", "o", "", "write to file instead of stdout")

	keywordCmd.AddCommand(keywordListCmd)
	keywordCmd.AddCommand(keywordAddCmd)
	keywordCmd.AddCommand(keywordRemoveCmd)
	keywordCmd.AddCommand(keywordEnableCmd)
	keywordCmd.AddCommand(keywordDisableCmd)
	keywordCmd.AddCommand(keywordColorCmd)
	keywordCmd.AddCommand(keywordMoveCmd)
	keywordCmd.AddCommand(keywordReorderCmd)
	keywordCmd.AddCommand(keywordImportCmd)
	keywordCmd.AddCommand(keywordExportCmd)
	rootCmd.AddCommand(keywordCmd)
}

var errKeywordNotConfigured = errors.New("keyword service not configured")

func runKeywordList(cmd *cobra.Command, _ []string) error {
	if keywordService == nil {
		return errKeywordNotConfigured
	}

	keywords, err := keywordService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list keywords: %w", err)
	}

	if keywordJSON {
		data, err := json.MarshalIndent(keywords, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal keywords: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(keywords) == 0 {
		cmd.Println("No keywords. Add one with: hilite keyword add <text>")
		return nil
	}

	lg := lipgloss.NewRenderer(cmd.OutOrStdout())
	dim := lg.NewStyle().Faint(true)
	for i := range keywords {
		kw := keywords[i]
		swatch := lg.NewStyle().
			Background(lipgloss.Color(kw.Color)).
			Foreground(lipgloss.Color("#000000")).
			Render(" " + kw.Text + " ")
		status := ""
		if !kw.Enabled {
			status = dim.Render(" (disabled)")
		}
		cmd.Printf("%2d. %s %s %s%s\n", i+1, swatch,
			dim.Render(fmt.Sprintf("%s %s", kw.Color, domain.ColorName(kw.Color))),
			dim.Render(kw.ID), status)
	}
	return nil
}

func runKeywordAdd(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errKeywordNotConfigured
	}
	kw, err := keywordService.Add(cmd.Context(), args[0], keywordColor)
	if err != nil {
		return fmt.Errorf("failed to add keyword: %w", err)
	}
	cmd.Printf("Added %q (%s) with ID %s\n", kw.Text, kw.Color, kw.ID)
	return nil
}

func runKeywordRemove(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errKeywordNotConfigured
	}
	if err := keywordService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove keyword: %w", err)
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}

func runKeywordToggle(cmd *cobra.Command, ref string, enabled bool) error {
	if keywordService == nil {
		return errKeywordNotConfigured
	}
	if err := keywordService.Toggle(cmd.Context(), ref, enabled); err != nil {
		return fmt.Errorf("failed to update keyword: %w", err)
	}
	state := "Disabled"
	if enabled {
		state = "Enabled"
	}
	cmd.Printf("%s %s\n", state, ref)
	return nil
}

func runKeywordColor(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errKeywordNotConfigured
	}
	if err := keywordService.SetColor(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set colour: %w", err)
	}
	color := domain.ResolveColor(args[1])
	cmd.Printf("%s is now %s (%s)\n", args[0], color, domain.ColorName(color))
	return nil
}

func runKeywordMove(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errKeywordNotConfigured
	}
	position, err := strconv.Atoi(args[1])
	if err != nil || position < 1 {
		return fmt.Errorf("position must be a number from 1: %q", args[1])
	}
	if err := keywordService.Move(cmd.Context(), args[0], position-1); err != nil {
		return fmt.Errorf("failed to move keyword: %w", err)
	}
	cmd.Printf("Moved %s to position %d\n", args[0], position)
	return nil
}

func runKeywordReorder(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errKeywordNotConfigured
	}
	keywords, err := keywordService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list keywords: %w", err)
	}

	// Arguments may be IDs or texts; the service takes IDs.
	ids := make([]string, len(args))
	for i, ref := range args {
		j := domain.FindKeyword(keywords, ref)
		if j < 0 {
			return fmt.Errorf("keyword %q: %w", ref, domain.ErrNotFound)
		}
		ids[i] = keywords[j].ID
	}

	if err := keywordService.Reorder(cmd.Context(), ids); err != nil {
		return fmt.Errorf("failed to reorder keywords: %w", err)
	}
	cmd.Printf("Reordered %d keywords\n", len(ids))
	return nil
}

func runKeywordImport(cmd *cobra.Command, args []string) error {
	if keywordService == nil {
		return errKeywordNotConfigured
	}

	format := transfer.FormatFromPath(args[0])
	if importFormat != "" {
		f, err := transfer.ParseFormat(importFormat)
		if err != nil {
			return err
		}
		format = f
	}

	r := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	keywords, err := transfer.Import(r, format)
	if err != nil {
		return fmt.Errorf("failed to read keywords: %w", err)
	}
	added, err := keywordService.Import(cmd.Context(), keywords, importReplace)
	if err != nil {
		return fmt.Errorf("failed to import keywords: %w", err)
	}

	skipped := len(keywords) - added
	if skipped > 0 {
		cmd.Printf("Imported %d keywords (%d already present)\n", added, skipped)
		return nil
	}
	cmd.Printf("Imported %d keywords\n", added)
	return nil
}

func runKeywordExport(cmd *cobra.Command, _ []string) error {
	if keywordService == nil {
		return errKeywordNotConfigured
	}

	format, err := transfer.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("format") && exportFilePath != "" {
		format = transfer.FormatFromPath(exportFilePath)
	}

	keywords, err := keywordService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list keywords: %w", err)
	}

	if exportFilePath == "" {
		return transfer.Export(cmd.OutOrStdout(), keywords, format)
	}

	var b strings.Builder
	if err := transfer.Export(&b, keywords, format); err != nil {
		return err
	}
	if err := os.WriteFile(exportFilePath, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportFilePath, err)
	}
	cmd.Printf("Exported %d keywords to %s\n", len(keywords), exportFilePath)
	return nil
}
