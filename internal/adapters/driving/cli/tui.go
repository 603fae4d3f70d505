package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reader-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [case-id]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal UI for reading a claims folder.

Without a case id the UI starts on the menu. With one it opens the
document list of that case directly, restoring its last filters, sort and
scroll position.

Controls:
  ↑/k, ↓/j - Navigate documents
  Enter    - Open document
  Space    - Show or hide comments
  s / y    - Sort by receipt date / document type
  c / t    - Category / issue tag filter
  /        - Search
  Esc      - Back / Close dropdown
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

// runProgram starts the app. Tests replace it to avoid taking over the
// terminal.
var runProgram = func(app *tui.App) error {
	return app.Run()
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the configured services.
func tuiPorts() *tui.Ports {
	ports := tui.NewPorts(caseService, documentService, annotationService, readerService)
	ports.Settings = settingsService
	return ports
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())
	if len(args) == 1 {
		app.WithCase(args[0])
	}

	if err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
