package main

import (
	"fmt"
	"log/slog"

	"netstorctl/internal/backend/factory"
	"netstorctl/internal/collection"
	"netstorctl/internal/config"
	"netstorctl/internal/logger"
	"netstorctl/internal/service"
	"netstorctl/internal/ui/prompt"
	"netstorctl/pkg/formatter"
)

// appContainer holds the shared dependencies for the application
type appContainer struct {
	Settings  *config.Manager
	Factory   *factory.Factory
	Formatter *formatter.ListingFormatter
	Prompter  prompt.Prompter
	Logger    *slog.Logger
	LogLevel  *slog.LevelVar

	// Persistent flag state, bound by the root command.
	debug           bool
	collectionsFile string
}

// Creates and initializes a new application container
func newApp() (*appContainer, error) {
	settings, err := config.NewManager()
	if err != nil {
		return nil, err
	}

	log, levelVar := logger.NewLogger(settings.LogLevel())

	return &appContainer{
		Settings:  settings,
		Factory:   factory.NewFactory(log),
		Formatter: formatter.NewListingFormatter(),
		Prompter:  prompt.NewTypedConfirmPrompter(),
		Logger:    log,
		LogLevel:  levelVar,
	}, nil
}

// collectionService loads the collections file and wires the service around
// it. Loaded per invocation so the config command works without one.
func (a *appContainer) collectionService() (*service.CollectionService, error) {
	path := a.collectionsFile
	if path == "" {
		path = a.Settings.CollectionsFile()
	}

	registry, err := collection.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading collections file %s: %w", path, err)
	}

	return service.NewCollectionService(registry, a.Factory, a.Logger), nil
}
