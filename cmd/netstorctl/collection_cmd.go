package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"netstorctl/internal/flags"
	"netstorctl/pkg/formatter"
)

func newConnectCmd(app *appContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "connect [collection]",
		Short: "Test connectivity for a collection's backends",
		Long: `Probes the storage and target backend of the named collection with a
lightweight existence check and reports the result per role.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			svc, err := app.collectionService()
			if err != nil {
				return err
			}

			statuses, err := svc.TestConnections(cmd.Context(), name)
			if err != nil {
				return err
			}

			for _, status := range statuses {
				switch {
				case status.Absent:
					fmt.Printf("%s/%s: no backend configured\n", name, status.Role)
				case status.Err != nil:
					fmt.Printf("%s/%s (%s): connection failed: %v\n", name, status.Role, status.Type, status.Err)
				default:
					fmt.Printf("%s/%s (%s): connection ok\n", name, status.Role, status.Type)
				}
			}
			return nil
		},
	}
}

func newListCmd(app *appContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "list [collection]",
		Short: "List the remote contents of a collection",
		Long: `Fetches the recursive NetStorage content listing for each role of the
named collection and prints it as a table. Roles backed by another store
are reported but not listed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			svc, err := app.collectionService()
			if err != nil {
				return err
			}

			listings, err := svc.ContentLists(cmd.Context(), name)
			if err != nil {
				return err
			}

			for _, listing := range listings {
				switch {
				case listing.Absent:
					fmt.Printf("%s/%s: no backend configured\n", name, listing.Role)
				case !listing.Connector:
					fmt.Printf("%s/%s: not NetStorage-backed (%s)\n", name, listing.Role, listing.Type)
				case listing.Err != nil:
					fmt.Printf("%s/%s: listing failed: %v\n", name, listing.Role, listing.Err)
				default:
					fmt.Println(app.Formatter.FormatRoleHeader(name, string(listing.Role), string(listing.Type)))
					fmt.Println(app.Formatter.FormatTree(listing.Root))
				}
			}
			return nil
		},
	}
}

func newListPathsCmd(app *appContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "list-paths [collection]",
		Short: "List the flattened remote paths of a collection",
		Long: `Prints every remote path of each NetStorage-backed role, decoded and
ordered deepest-first, the same order the nuke command deletes in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			svc, err := app.collectionService()
			if err != nil {
				return err
			}

			paths, err := svc.ContentPaths(cmd.Context(), name)
			if err != nil {
				return err
			}

			for _, rolePaths := range paths {
				switch {
				case rolePaths.Absent:
					fmt.Printf("%s/%s: no backend configured\n", name, rolePaths.Role)
				case !rolePaths.Connector:
					fmt.Printf("%s/%s: not NetStorage-backed (%s)\n", name, rolePaths.Role, rolePaths.Type)
				case rolePaths.Err != nil:
					fmt.Printf("%s/%s: listing failed: %v\n", name, rolePaths.Role, rolePaths.Err)
				default:
					fmt.Println(app.Formatter.FormatRoleHeader(name, string(rolePaths.Role), string(rolePaths.Type)))
					fmt.Println(app.Formatter.FormatPaths(rolePaths.Paths))
				}
			}
			return nil
		},
	}
}

func newNukeCmd(app *appContainer) *cobra.Command {
	var force bool

	nukeCmd := &cobra.Command{
		Use:   "nuke [collection]",
		Short: "Remove every remote file of a collection",
		Long: `Permanently removes every file and directory under the NetStorage working
directories of the named collection, storage role first, then target.
Requires confirmation: pass --force, or type the collection name at the
prompt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			svc, err := app.collectionService()
			if err != nil {
				return err
			}

			if !force {
				confirmed, err := app.Prompter.Confirm(
					fmt.Sprintf("This permanently removes every remote file of the %q collection.", name),
					name,
				)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			return svc.Nuke(cmd.Context(), name, os.Stdout)
		},
	}
	nukeCmd.Flags().BoolVarP(&force, flags.Force, flags.ForceShort, false, "Skip the confirmation prompt")
	return nukeCmd
}

func newCollectionsCmd(app *appContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List the declared collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.collectionService()
			if err != nil {
				return err
			}

			table := formatter.NewTable("COLLECTION", "STORAGE", "TARGET")
			for _, row := range svc.Overview() {
				table.AddRow(row.Name, row.Storage, row.Target)
			}
			fmt.Println(table.String())
			return nil
		},
	}
}
