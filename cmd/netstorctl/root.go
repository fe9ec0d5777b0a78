package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"netstorctl/internal/flags"
)

func newRootCmd(app *appContainer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "netstorctl",
		Short: "netstorctl inspects and cleans NetStorage-backed resource collections.",
		Long: `A command-line tool for the NetStorage connectors of a CMS deployment's
resource collections. Test connectivity, list remote contents, and
bulk-remove files for the storage and target roles of a named collection.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.debug {
				app.LogLevel.Set(slog.LevelDebug)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.debug, flags.Debug, flags.DebugShort, false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&app.collectionsFile, flags.Collections, flags.CollectionsShort, "", "Path to the collections file (overrides the configured one)")

	rootCmd.AddCommand(
		newConnectCmd(app),
		newListCmd(app),
		newListPathsCmd(app),
		newNukeCmd(app),
		newCollectionsCmd(app),
		newConfigCmd(app),
	)
	return rootCmd
}

func Execute(app *appContainer) {
	if err := newRootCmd(app).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
