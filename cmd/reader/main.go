// Command reader browses and annotates the documents of claims folders.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/reader-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/reader-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/reader-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/reader-cli/internal/core/services"
	"github.com/custodia-labs/reader-cli/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// watchInterval is the minimum time between two re-imports of a watched
// manifest.
const watchInterval = time.Second

func main() {
	cli.SetVersion(version)

	var store *sqlite.Store
	cli.OnInitialize(func(opts cli.Options) error {
		var err error
		store, err = wire(opts)
		return err
	})

	err := cli.Execute()
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("closing database: %v", cerr)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// wire opens storage and installs the services into the CLI.
func wire(opts cli.Options) (*sqlite.Store, error) {
	configStore, err := file.NewConfigStore(os.Getenv("READER_CONFIG_DIR"))
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	dataDir := opts.DataDir
	if dataDir == "" {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
		dataDir = settings.Storage.DataDir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("using database %s", store.Path())

	caseStore := store.CaseStore()
	docStore := store.DocumentStore()
	annotationStore := store.AnnotationStore()

	importService := services.NewImportService(file.NewManifestLoader(), caseStore, docStore, annotationStore).
		WithWatcher(file.NewWatcher(watchInterval))

	cli.SetServices(cli.Services{
		Case:       services.NewCaseService(caseStore),
		Document:   services.NewDocumentService(docStore),
		Annotation: services.NewAnnotationService(annotationStore, docStore),
		Reader:     services.NewReaderService(caseStore, docStore, annotationStore, store.ViewStateStore(), settingsService),
		Import:     importService,
		Settings:   settingsService,
	})
	return store, nil
}
