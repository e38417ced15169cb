package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/solace/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database schema migrations",
	Long:  "Apply, inspect, and roll back schema migrations without running the server.",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrateUp,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations are applied",
	Args:  cobra.NoArgs,
	RunE:  runMigrateStatus,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE:  runMigrateDown,
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&dbPathOverride, "db", "",
		"Database path (overrides config and SOLACE_DB_PATH)")
	migrateCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output in JSON format")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	db, err := store.OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.RunMigrations(ctx, db); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied to %s\n", path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	db, err := store.OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	statuses, err := store.MigrationStatuses(ctx, db)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"database":   path,
			"migrations": statuses,
		})
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "VERSION\tSTATE\tSOURCE")
	for _, s := range statuses {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, state, s.Source)
	}
	return w.Flush()
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	db, err := store.OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.RollbackMigration(ctx, db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Rolled back one migration")
	return nil
}
