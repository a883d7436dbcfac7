package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/tvnav/internal/config"
	"github.com/marcus/tvnav/internal/db"
	"github.com/marcus/tvnav/internal/logging"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "tvnav",
	Short: "Remote-control focus navigation for a video catalog",
	Long: `tvnav - A TV style browser driven by the five remote buttons.

Focus moves between regions (tab strips, hero banners, item grids and an
on-screen keyboard) exactly as it would on a TV, with infinite grids loading
more pages as focus approaches their end.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// getBaseDir returns the directory holding .tvnav/
func getBaseDir() string {
	return baseDir
}

// loadConfig reads the config of the current base directory
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getBaseDir())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openCatalog opens the catalog database named by cfg
func openCatalog(cfg *config.Config) (*db.DB, error) {
	return db.Open(cfg.ResolveCatalogPath(getBaseDir()), cfg.CatalogDriver)
}

// openSeededCatalog opens the catalog and seeds it if it is empty, so a first
// run has something to browse.
func openSeededCatalog(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	database, err := openCatalog(cfg)
	if err != nil {
		return nil, err
	}
	stats, err := database.Stats(ctx)
	if err != nil {
		database.Close()
		return nil, err
	}
	if stats.Videos == 0 {
		if _, err := database.Seed(ctx, db.DefaultSeed); err != nil {
			database.Close()
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}
	return database, nil
}

// openLogger opens the debug log under .tvnav/
func openLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.Open(config.Dir(getBaseDir()), cfg.LogLevel)
}
