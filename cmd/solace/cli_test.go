package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hyperengineering/solace/internal/auth"
	"github.com/hyperengineering/solace/internal/store"
	"github.com/hyperengineering/solace/internal/types"
)

// executeCmd runs the root command with captured output.
func executeCmd(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()

	// Cobra parses into package-level variables; reset them between runs.
	dbPathOverride = ""
	jsonOutput = false
	purgeRetention = 30 * 24 * time.Hour
	tokenOwner = ""
	tokenTTL = 24 * time.Hour

	outBuf := new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()

	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	rootCmd.SetArgs(nil)

	return outBuf.String(), err
}

func TestMigrate_UpThenStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "solace.db")

	out, err := executeCmd(t, "migrate", "up", "--db", dbPath)
	if err != nil {
		t.Fatalf("migrate up error = %v", err)
	}
	if !strings.Contains(out, "Migrations applied") {
		t.Errorf("output = %q", out)
	}

	out, err = executeCmd(t, "migrate", "status", "--db", dbPath, "--json")
	if err != nil {
		t.Fatalf("migrate status error = %v", err)
	}

	var resp struct {
		Migrations []store.MigrationStatus `json:"migrations"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("status output is not JSON: %v (%s)", err, out)
	}
	if len(resp.Migrations) == 0 {
		t.Fatal("expected at least one migration")
	}
	for _, m := range resp.Migrations {
		if !m.Applied {
			t.Errorf("migration %d not applied", m.Version)
		}
	}
}

func TestMigrate_StatusTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "solace.db")

	if _, err := executeCmd(t, "migrate", "up", "--db", dbPath); err != nil {
		t.Fatalf("migrate up error = %v", err)
	}
	out, err := executeCmd(t, "migrate", "status", "--db", dbPath)
	if err != nil {
		t.Fatalf("migrate status error = %v", err)
	}
	if !strings.Contains(out, "VERSION") || !strings.Contains(out, "applied") {
		t.Errorf("output = %q", out)
	}
}

func TestPurge_RemovesOldTombstones(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "solace.db")

	// Seed one deleted and one live entry, stamped well in the past.
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := store.NewSQLiteStore(dbPath, store.WithClock(func() time.Time { return old }))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	ctx := context.Background()
	gone, err := s.CreateMood(ctx, "owner-1", types.NewMoodEntry{Mood: types.MoodBad, Context: types.ContextManual})
	if err != nil {
		t.Fatalf("CreateMood() error = %v", err)
	}
	if _, err := s.CreateMood(ctx, "owner-1", types.NewMoodEntry{Mood: types.MoodGood, Context: types.ContextManual}); err != nil {
		t.Fatalf("CreateMood() error = %v", err)
	}
	if err := s.SoftDeleteMood(ctx, gone.ID, "owner-1"); err != nil {
		t.Fatalf("SoftDeleteMood() error = %v", err)
	}
	s.Close()

	out, err := executeCmd(t, "purge", "--db", dbPath, "--retention", "24h", "--json")
	if err != nil {
		t.Fatalf("purge error = %v", err)
	}

	var resp struct {
		Purged int64 `json:"purged"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("purge output is not JSON: %v (%s)", err, out)
	}
	if resp.Purged != 1 {
		t.Errorf("purged = %d, want 1", resp.Purged)
	}
}

func TestPurge_RejectsNegativeRetention(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "solace.db")

	if _, err := executeCmd(t, "purge", "--db", dbPath, "--retention", "-1h"); err == nil {
		t.Error("expected error for negative retention")
	}
}

func TestToken_IssuesVerifiableToken(t *testing.T) {
	t.Setenv("SOLACE_JWT_SECRET", "cli-test-secret")
	t.Setenv("SOLACE_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	out, err := executeCmd(t, "token", "--owner", "owner-42", "--ttl", "1h")
	if err != nil {
		t.Fatalf("token error = %v", err)
	}

	owner, err := auth.OwnerFromToken(strings.TrimSpace(out), []byte("cli-test-secret"))
	if err != nil {
		t.Fatalf("OwnerFromToken() error = %v", err)
	}
	if owner != "owner-42" {
		t.Errorf("owner = %q, want owner-42", owner)
	}
}

func TestToken_RequiresOwner(t *testing.T) {
	if _, err := executeCmd(t, "token"); err == nil {
		t.Error("expected error without --owner")
	}
}

func TestToken_RequiresSecret(t *testing.T) {
	os.Unsetenv("SOLACE_JWT_SECRET")
	os.Unsetenv("SOLACE_DEV_MODE")
	t.Setenv("SOLACE_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := executeCmd(t, "token", "--owner", "owner-1"); err == nil {
		t.Error("expected error without SOLACE_JWT_SECRET")
	}
}
