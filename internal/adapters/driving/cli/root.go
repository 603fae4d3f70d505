// Package cli provides the cobra command tree of the reader binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/reader-cli/internal/core/ports/driving"
	"github.com/custodia-labs/reader-cli/internal/logger"
)

// Options are the global flag values handed to the initializer.
type Options struct {
	// DataDir overrides the storage directory when non-empty.
	DataDir string
	// Verbose enables debug logging.
	Verbose bool
}

// Services are the driving ports the commands call into.
type Services struct {
	Case       driving.CaseService
	Document   driving.DocumentService
	Annotation driving.AnnotationService
	Reader     driving.ReaderService
	Import     driving.ImportService
	Settings   driving.SettingsService
}

var (
	version = "dev"

	caseService       driving.CaseService
	documentService   driving.DocumentService
	annotationService driving.AnnotationService
	readerService     driving.ReaderService
	importService     driving.ImportService
	settingsService   driving.SettingsService

	// initializer wires the services once flags are parsed.
	initializer func(Options) error

	verbose bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "reader",
	Short: "Browse and annotate claims folder documents",
	Long: `Reader lists the documents of a claims folder, filters them by category,
issue tag or free text, and keeps comments on document pages.

Import a case manifest first, then open it in the terminal UI:

  reader import case.toml
  reader tui <case-id>`,
	SilenceUsage:      true,
	PersistentPreRunE: initialise,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory of the document database")
}

func initialise(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if initializer == nil || cmd.Annotations["skipServices"] == "true" {
		return nil
	}
	fn := initializer
	initializer = nil
	return fn(Options{DataDir: dataDir, Verbose: verbose})
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices sets the services used by all commands.
func SetServices(s Services) {
	caseService = s.Case
	documentService = s.Document
	annotationService = s.Annotation
	readerService = s.Reader
	importService = s.Import
	settingsService = s.Settings
}

// OnInitialize registers a function that builds the services after the
// global flags are parsed and before any command runs. It is called at
// most once.
func OnInitialize(fn func(Options) error) {
	initializer = fn
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
