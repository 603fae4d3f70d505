package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reader-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the defaults of the document list and the storage location.

Use subcommands to change a single key or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting by key.

Keys:
  list.default_sort       receivedAt or type
  list.default_ascending  true or false
  list.expand_comments    true or false
  storage.data_dir        directory of the document database`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to choose the document list defaults step by step.`,
	RunE:  runSettingsWizard,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Document list]")
	cmd.Printf("  Sort by:        %s\n", describeSortField(settings.List.DefaultSort.SortBy))
	cmd.Printf("  Direction:      %s\n", describeDirection(settings.List.DefaultSort.SortAscending))
	cmd.Printf("  Show comments:  %s\n", describeToggle(settings.List.ExpandComments))
	cmd.Println()

	cmd.Println("[Storage]")
	if settings.Storage.DataDir != "" {
		cmd.Printf("  Data dir:       %s\n", settings.Storage.DataDir)
	} else {
		cmd.Printf("  Data dir:       (default)\n")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w\nvalid keys: %s", key, err, strings.Join(settingsService.Keys(), ", "))
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Reader Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Sort documents by")
	cmd.Println("-------------------------")
	fields := []domain.SortField{domain.SortByReceivedAt, domain.SortByType}
	current := 1
	for i, f := range fields {
		cmd.Printf("  %d. %s\n", i+1, describeSortField(f))
		if f == settings.List.DefaultSort.SortBy {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.List.DefaultSort.SortBy = fields[parseChoice(readLine(reader), len(fields), current)-1]
	cmd.Println()

	cmd.Println("Step 2: Direction")
	cmd.Println("-----------------")
	cmd.Println("  1. Ascending")
	cmd.Println("  2. Descending")
	current = 1
	if !settings.List.DefaultSort.SortAscending {
		current = 2
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.List.DefaultSort.SortAscending = parseChoice(readLine(reader), 2, current) == 1
	cmd.Println()

	cmd.Println("Step 3: Show every comment when a case opens")
	cmd.Println("--------------------------------------------")
	cmd.Println("  1. Off")
	cmd.Println("  2. On")
	current = 1
	if settings.List.ExpandComments {
		current = 2
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.List.ExpandComments = parseChoice(readLine(reader), 2, current) == 2
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("Settings apply to cases without a saved list state.")
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Settings restored to defaults.")
	return nil
}

func describeSortField(f domain.SortField) string {
	if f == domain.SortByType {
		return "Document type"
	}
	return "Receipt date"
}

func describeDirection(ascending bool) string {
	if ascending {
		return "Ascending"
	}
	return "Descending"
}

func describeToggle(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

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
