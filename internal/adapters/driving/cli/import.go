package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
)

var importCmd = &cobra.Command{
	Use:   "import [manifest]",
	Short: "Import a case manifest",
	Long: `Import a case with its documents and comments from a TOML or JSON manifest.

Re-importing a manifest updates the stored records. Documents already
opened stay marked as read.

Use --watch to keep running and re-import whenever the file changes.

Example manifest (TOML):
  [case]
  id = "3014"
  veteran_name = "Joe Snuffy"

  [[documents]]
  id = 1
  type = "Form 9"
  received_at = "2017-05-03"
  categories = ["procedural"]
  tags = ["Service Connection"]`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importWatch bool

func init() {
	importCmd.Flags().BoolVarP(&importWatch, "watch", "w", false, "Re-import when the manifest changes")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}

	path := args[0]
	ctx := cmd.Context()

	result, err := importService.ImportFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}
	printImport(cmd, result)

	if !importWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for changes (ctrl+c to stop)\n", path)
	err = importService.Watch(ctx, path, func(result *driving.ImportResult, err error) {
		if err != nil {
			cmd.PrintErrf("Import failed: %v\n", err)
			return
		}
		printImport(cmd, result)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printImport(cmd *cobra.Command, r *driving.ImportResult) {
	cmd.Printf("Imported case %s (%s): %d documents, %d comments\n",
		r.Case.ID, r.Case.VeteranName, r.Documents, r.Annotations)
}
