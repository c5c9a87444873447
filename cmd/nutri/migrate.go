// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies profiles, entries, and insights from the active backend to another.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/config"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrateTo     string
	migrateToDir  string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data to another storage backend",
	Long: `Copy all nutrition data from the active backend to another backend.

The source is the backend selected by --backend, NUTRI_BACKEND, or the
config file. The destination must be empty; existing data is never
overwritten.

USAGE:

  nutri migrate --to badger --dry-run   # Preview what would be migrated
  nutri migrate --to badger             # SQLite -> Badger in the same data dir
  nutri --backend badger migrate --to sqlite --to-dir /tmp/nutri

AFTER MIGRATION:

  Point nutri at the new backend:
    export NUTRI_BACKEND=badger
  or set "backend" in ~/.config/nutri/config.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsValidBackend(migrateTo) {
			return fmt.Errorf("unknown destination backend: %q (use sqlite, badger, or charm)", migrateTo)
		}

		dst := *cfg
		dst.Backend = migrateTo
		if migrateToDir != "" {
			dst.DataDir = migrateToDir
		}
		if dst.GetBackend() == cfg.GetBackend() && dst.GetDataDir() == cfg.GetDataDir() {
			return fmt.Errorf("source and destination are the same (%s in %s)", cfg.GetBackend(), cfg.GetDataDir())
		}

		data, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to read source data: %w", err)
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
			fmt.Printf("Would migrate from %s to %s:\n", cfg.GetBackend(), dst.GetBackend())
			fmt.Printf("  Profiles: %d\n", len(data.Profiles))
			fmt.Printf("  Entries:  %d\n", len(data.Entries))
			fmt.Printf("  Insights: %d\n", len(data.Insights))
			return nil
		}

		if dst.GetBackend() == config.BackendBadger {
			nonEmpty, err := storage.IsDirNonEmpty(filepath.Join(dst.GetDataDir(), "badger"))
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("destination %s already contains data", filepath.Join(dst.GetDataDir(), "badger"))
			}
		}

		target, err := dst.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer target.Close()

		existing, err := target.ListProfiles()
		if err != nil {
			return fmt.Errorf("failed to inspect destination: %w", err)
		}
		if len(existing) > 0 {
			return fmt.Errorf("destination %s already has %d profiles", dst.GetBackend(), len(existing))
		}

		summary, err := storage.MigrateData(repo, target)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("migration complete",
			zap.String("from", cfg.GetBackend()),
			zap.String("to", dst.GetBackend()),
			zap.Int("profiles", summary.Profiles),
			zap.Int("entries", summary.Entries),
			zap.Int("insights", summary.Insights))

		color.Green("✓ Migrated %s → %s", cfg.GetBackend(), dst.GetBackend())
		fmt.Printf("  Profiles: %d\n", summary.Profiles)
		fmt.Printf("  Entries:  %d\n", summary.Entries)
		fmt.Printf("  Insights: %d\n", summary.Insights)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, badger, or charm")
	migrateCmd.Flags().StringVar(&migrateToDir, "to-dir", "", "destination data directory (default: current data dir)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
