package main

import (
	"fmt"
	"os"

	"github.com/tapestry-io/tapestry/internal/adapters/driven/auth"
	"github.com/tapestry-io/tapestry/internal/adapters/driven/config/file"
	"github.com/tapestry-io/tapestry/internal/adapters/driven/storage/sqlite"
	"github.com/tapestry-io/tapestry/internal/adapters/driving/cli"
	"github.com/tapestry-io/tapestry/internal/core/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open metadata store: %w", err)
	}
	defer store.Close()

	tokens := auth.NewFactory(configStore)
	registry := services.NewConnectorRegistry()
	factory := services.NewConnectorFactory(tokens)

	cli.SetServices(cli.Config{
		SourceService:     services.NewSourceService(store.SourceStore(), registry, factory, tokens),
		SyncService:       services.NewSyncService(store.SourceStore(), store.SyncRunStore(), factory),
		ConnectorRegistry: registry,
	})

	return cli.Execute(version)
}
