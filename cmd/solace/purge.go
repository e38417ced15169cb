package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/solace/internal/store"
)

var purgeRetention time.Duration

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Hard-delete soft-deleted records past the retention window",
	Args:  cobra.NoArgs,
	RunE:  runPurge,
}

func init() {
	purgeCmd.Flags().StringVar(&dbPathOverride, "db", "",
		"Database path (overrides config and SOLACE_DB_PATH)")
	purgeCmd.Flags().BoolVar(&jsonOutput, "json", false,
		"Output in JSON format")
	purgeCmd.Flags().DurationVar(&purgeRetention, "retention", 30*24*time.Hour,
		"Keep records deleted more recently than this")
}

func runPurge(cmd *cobra.Command, args []string) error {
	if purgeRetention < 0 {
		return errors.New("retention must not be negative")
	}

	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	db, err := store.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer db.Close()

	cutoff := time.Now().Add(-purgeRetention)
	purged, err := db.PurgeDeleted(context.Background(), cutoff)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"purged": purged,
			"cutoff": cutoff.UTC().Format(time.RFC3339),
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Purged %d records deleted before %s\n", purged, cutoff.UTC().Format(time.RFC3339))
	return nil
}
