// ABOUTME: Root Cobra command for nutri CLI.
// ABOUTME: Loads config, builds the logger, and opens storage via PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/nutri/internal/config"
	"github.com/harperreed/nutri/internal/logging"
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// noStorage marks commands that must not open the configured backend.
const noStorage = "no-storage"

var (
	cfg      *config.Config
	repo     storage.Repository
	logger   = logging.Nop()
	closeLog func() error

	rootBackend string
	rootDataDir string
	rootVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nutri",
	Short: "Nutrition tracker with health-aware daily insights",
	Long: `Nutri logs what you eat and turns each day into a nutrition insight
checked against your health profile.

WHAT IT DOES:

  Profiles       height, weight, birth date, conditions, allergies, medications, smoking
  Food log       calories, macros, fiber, sugar, sodium, vitamins, minerals per serving
  Insights       conflicts, recommendations, health score (1-10), weekly summary

QUICK START:

  $ nutri profile create Ada --height 168 --weight 62 --allergy peanut
  $ nutri log "Oatmeal" --calories 150 --protein 5 --carbs 27 --fat 3 --fiber 4 --meal breakfast
  $ nutri list                    # Recent entries
  $ nutri insight                 # Today's insight

STORAGE BACKENDS:

  sqlite   Local SQLite database (default) at ~/.local/share/nutri/nutri.db
  badger   Local Badger KV store at ~/.local/share/nutri/badger
  charm    Charm KV, E2E encrypted and synced across devices

  Select with --backend, NUTRI_BACKEND, or "backend" in
  ~/.config/nutri/config.json.

MCP INTEGRATION:

  Run 'nutri mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "nutri": { "command": "nutri", "args": ["mcp"] }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute runs the root command and releases storage even when a command fails.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := teardown(); err == nil {
		err = cerr
	}
	return err
}

func setup(cmd *cobra.Command) error {
	if err := teardown(); err != nil {
		return err
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if rootBackend != "" {
		loaded.Backend = rootBackend
	}
	if rootDataDir != "" {
		loaded.DataDir = rootDataDir
	}
	if !config.IsValidBackend(loaded.GetBackend()) {
		return fmt.Errorf("unknown backend: %s (use %s)", loaded.GetBackend(), strings.Join(config.Backends, ", "))
	}
	cfg = loaded

	log, closeFn, err := logging.New("nutri", logging.Options{
		Verbose: rootVerbose,
		File:    cfg.GetLogFile(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger, closeLog = log, closeFn

	if _, skip := cmd.Annotations[noStorage]; skip {
		return nil
	}

	r, err := cfg.OpenStorage(logger)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}
	repo = r
	logger.Debug("storage opened",
		zap.String("backend", cfg.GetBackend()),
		zap.String("data_dir", cfg.GetDataDir()))
	return nil
}

func teardown() error {
	var err error
	if repo != nil {
		err = repo.Close()
		repo = nil
	}
	if closeLog != nil {
		_ = closeLog()
		closeLog = nil
		logger = logging.Nop()
	}
	return err
}

// currentProfile resolves --profile, then the configured default, then the only profile.
func currentProfile(ref string) (*models.HealthProfile, error) {
	def := ""
	if cfg != nil {
		def = cfg.DefaultProfile
	}
	return storage.ResolveProfile(repo, ref, def)
}

// parseDay parses a YYYY-MM-DD flag value, defaulting to today.
func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Day(time.Now()), nil
	}
	d, err := models.ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return d, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootBackend, "backend", "", "storage backend: sqlite, badger, or charm")
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "data directory (default ~/.local/share/nutri)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "debug logging on stderr")
}
