package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hyperengineering/solace/internal/config"
)

// dbPathOverride is shared by the offline maintenance commands.
var (
	dbPathOverride string
	jsonOutput     bool
)

// resolveDBPath returns --db when set, otherwise the configured database path.
func resolveDBPath() (string, error) {
	if dbPathOverride != "" {
		return dbPathOverride, nil
	}
	dbCfg, err := config.LoadDatabaseConfig()
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return dbCfg.Path, nil
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
