package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure highlight defaults, excluded tags, the keyword
store, and watch mode.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsColorCmd = &cobra.Command{
	Use:   "color <colour>",
	Short: "Set the default colour for new keywords",
	Long: `Set the colour given to keywords added without one.

The colour is a hex value (#RGB or #RRGGBB) or a preset name:
Yellow, Green, Blue, Pink, Orange, Purple, Sky, Lime.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsColor,
}

var settingsExcludeCmd = &cobra.Command{
	Use:   "exclude <tag>...",
	Short: "Set the tags whose contents are never highlighted",
	Long: `Replace the list of excluded container tags. Text inside these
elements is never highlighted. Pass no tags to highlight everywhere.`,
	RunE: runSettingsExclude,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend [sqlite|redis|memory]",
	Short: "Select the keyword store",
	Long: `Select where the keyword list is kept.

Available backends:
  sqlite - local database file (default)
  redis  - shared list, synchronised across machines
  memory - kept for one invocation only

Without an argument, an interactive choice is offered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsBackend,
}

var settingsRedisCmd = &cobra.Command{
	Use:   "redis <addr> [key]",
	Short: "Configure the Redis keyword store",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSettingsRedis,
}

var settingsIntervalCmd = &cobra.Command{
	Use:   "interval <ms>",
	Short: "Set the minimum spacing between watch re-applications",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsInterval,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsColorCmd)
	settingsCmd.AddCommand(settingsExcludeCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsRedisCmd)
	settingsCmd.AddCommand(settingsIntervalCmd)
	rootCmd.AddCommand(settingsCmd)
}

var errSettingsNotConfigured = errors.New("settings service not configured")

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Highlight]")
	cmd.Printf("  Default colour: %s (%s)\n",
		settings.Highlight.DefaultColor, domain.ColorName(settings.Highlight.DefaultColor))
	excluded := "(none)"
	if len(settings.Highlight.ExcludedTags) > 0 {
		excluded = strings.Join(settings.Highlight.ExcludedTags, ", ")
	}
	cmd.Printf("  Excluded tags: %s\n", excluded)
	cmd.Printf("  Marker class: %s\n", settings.Highlight.MarkerClass)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	if settings.Storage.Backend == domain.StorageBackendRedis {
		addr := settings.Storage.RedisAddr
		if addr == "" {
			addr = "(not set)"
		}
		cmd.Printf("  Redis address: %s\n", addr)
		cmd.Printf("  Redis key: %s\n", settings.Storage.RedisKey)
	}
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Minimum interval: %s\n", settings.Watch.MinInterval)

	return nil
}

func runSettingsColor(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	if err := settingsService.SetDefaultColor(args[0]); err != nil {
		return fmt.Errorf("failed to set default colour: %w", err)
	}
	color := domain.ResolveColor(args[0])
	cmd.Printf("Default colour set to %s (%s)\n", color, domain.ColorName(color))
	return nil
}

func runSettingsExclude(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	if err := settingsService.SetExcludedTags(args); err != nil {
		return fmt.Errorf("failed to set excluded tags: %w", err)
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if len(settings.Highlight.ExcludedTags) == 0 {
		cmd.Println("No tags excluded")
		return nil
	}
	cmd.Printf("Excluded tags: %s\n", strings.Join(settings.Highlight.ExcludedTags, ", "))
	return nil
}

func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	var backend domain.StorageBackend
	if len(args) == 1 {
		backend = domain.StorageBackend(strings.ToLower(args[0]))
	} else {
		backend = promptBackend(cmd)
	}

	if err := settingsService.SetStorageBackend(backend); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}
	cmd.Printf("Storage backend set to %s\n", backend.Description())

	if backend == domain.StorageBackendRedis {
		settings, err := settingsService.Get()
		if err == nil && settings.Storage.RedisAddr == "" {
			cmd.Println("Set the server address with: hilite settings redis <addr>")
		}
	}
	return nil
}

func promptBackend(cmd *cobra.Command) domain.StorageBackend {
	current := domain.StorageBackendSQLite
	if settings, err := settingsService.Get(); err == nil {
		current = settings.Storage.Backend
	}

	choices := domain.AllStorageBackends()
	defaultChoice := 1
	cmd.Println("Select keyword store:")
	for i, b := range choices {
		marker := " "
		if b == current {
			marker = "*"
			defaultChoice = i + 1
		}
		cmd.Printf("  %s %d. %s\n", marker, i+1, b.Description())
	}
	cmd.Printf("Choice [%d]: ", defaultChoice)

	reader := bufio.NewReader(cmd.InOrStdin())
	input, _ := reader.ReadString('\n') //nolint:errcheck // EOF falls back to the default
	choice := parseChoice(strings.TrimSpace(input), len(choices), defaultChoice)
	return choices[choice-1]
}

func runSettingsRedis(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	settings.Storage.RedisAddr = strings.TrimSpace(args[0])
	if len(args) == 2 && strings.TrimSpace(args[1]) != "" {
		settings.Storage.RedisKey = strings.TrimSpace(args[1])
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Redis store: %s (key %s)\n", settings.Storage.RedisAddr, settings.Storage.RedisKey)
	return nil
}

func runSettingsInterval(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	ms, err := strconv.Atoi(args[0])
	if err != nil || ms <= 0 {
		return fmt.Errorf("interval must be a positive number of milliseconds: %q", args[0])
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.Watch.MinInterval = time.Duration(ms) * time.Millisecond
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Watch interval set to %s\n", settings.Watch.MinInterval)
	return nil
}

// parseChoice parses a 1-based menu choice, returning defaultVal when the
// input is empty or out of range.
func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
