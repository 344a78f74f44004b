// Package cli implements the weave CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/calebnewtonusc/webcalhacks25/internal/bus"
	"github.com/calebnewtonusc/webcalhacks25/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "weave",
	Short: "Keep your relationships warm",
	Long:  "A relationship intelligence CLI. Track the people in your web, log interactions, and get nudged before ties go cold. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $WEAVE_DB or ~/.weave/weave.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("WEAVE_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".weave", "weave.db")
}

// session is one CLI invocation's view of the web: the snapshot is
// loaded into an in-memory store, commands run against the store, and
// mutating commands save back before exit.
type session struct {
	store *store.ConnectionStore
	snap  *store.Snapshot
	stop  func()
}

func openSession(ctx context.Context) (*session, error) {
	snap, err := store.OpenSnapshot(getDBPath())
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	conns, memories, err := snap.Load(ctx)
	if err != nil {
		snap.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s := store.New(bus.New(logger))
	s.Restore(conns, memories)
	stop := s.EnableMemoryCapture()

	return &session{store: s, snap: snap, stop: stop}, nil
}

func (s *session) save(ctx context.Context) error {
	return s.snap.Save(ctx, s.store)
}

func (s *session) close() {
	s.stop()
	s.snap.Close()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
