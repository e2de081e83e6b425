package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Manage keywords in an interactive terminal UI",
	Long: `Launch the interactive keyword manager.

The list shows keywords in application order. Changes made by other
hilite processes appear as they are saved.

Controls:
  ↑/k, ↓/j - Navigate keywords
  a        - Add a keyword
  space    - Enable / disable
  c        - Change colour
  d        - Delete
  K, J     - Move up / down
  s        - Settings
  ?        - Help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the keyword manager from the configured services.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	if keywordService == nil {
		return nil, errKeywordNotConfigured
	}
	if settingsService == nil {
		return nil, errSettingsNotConfigured
	}

	app, err := tui.NewApp(&tui.Ports{
		Keyword:  keywordService,
		Settings: settingsService,
		Changes:  keywordChanges,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app.WithContext(cmd.Context()), nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
