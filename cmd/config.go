package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/tvnav/internal/config"
	"github.com/marcus/tvnav/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the tvnav config",
	Long: `Settings live in .tvnav/config.json under the working directory and may be
overridden with TVNAV_* environment variables. A running browser reloads the
keymap and log level when the file changes.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		return output.JSON(cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(output.Stdout, config.Path(getBaseDir()))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Path(getBaseDir())
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			err := fmt.Errorf("%s already exists (use --force to overwrite)", path)
			output.Error("%v", err)
			return err
		}
		if err := config.Save(getBaseDir(), config.Default()); err != nil {
			output.Error("failed to write config: %v", err)
			return err
		}
		output.Success("WROTE %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
