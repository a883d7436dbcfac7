package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/tvnav/internal/catalog"
	"github.com/marcus/tvnav/internal/output"
	"github.com/marcus/tvnav/internal/screens"
	"github.com/marcus/tvnav/pkg/tvui"
)

var errNoTerminal = errors.New("browse needs an interactive terminal")

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the catalog browser",
	Long: `Browse the demo catalog with arrow keys as the remote.

Arrows move focus, enter selects and esc goes back. Press / to search,
c for channels, r to reload the focused grid and ? for help.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			output.Error("%v", errNoTerminal)
			return errNoTerminal
		}

		screen, _ := cmd.Flags().GetString("screen")
		if !slices.Contains(screens.Names, screen) {
			err := fmt.Errorf("unknown screen %q, want one of %s", screen, strings.Join(screens.Names, ", "))
			output.Error("%v", err)
			return err
		}
		latency, _ := cmd.Flags().GetDuration("latency")

		cfg, err := loadConfig()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		logger, err := openLogger(cfg)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer logger.Close()

		database, err := openSeededCatalog(context.Background(), cfg)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer database.Close()

		fetcher := catalog.NewFetcher(database,
			catalog.WithPageSize(cfg.PageSize),
			catalog.WithLatency(latency),
			catalog.WithLogger(logger.Logger),
		)

		logger.Info("browse started", "version", version, "screen", screen, "latency", latency)
		m := tvui.New(tvui.Options{
			Fetcher: fetcher,
			Library: database,
			Config:  cfg,
			Logger:  logger,
			BaseDir: getBaseDir(),
			Screen:  screen,
		})
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			output.Error("run browser: %v", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().String("screen", screens.ScreenHome, "First screen: home, channels or search")
	browseCmd.Flags().Duration("latency", 0, "Simulated network latency per page fetch (e.g. 400ms)")
}
