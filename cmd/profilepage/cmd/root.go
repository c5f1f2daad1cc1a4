package cmd

import (
	"os"

	"github.com/nfrund/profilepage/internal/config"
	"github.com/nfrund/profilepage/internal/logging"
	"github.com/spf13/cobra"
)

// cfg is loaded once before any sub-command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "profilepage",
	Short: "Profile page server and prerenderer",
	Long: `profilepage serves a single profile page whose data is loaded from /api/profile.

Available commands:
  serve            Run the HTTP server
  prerender        Render prerenderable pages into the build directory
  list-services    List the service keys declared for the registry
  version          Print the version

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.New()
		if err != nil {
			return err
		}
		logging.New(cfg.LogFormat, cfg.LogLevel)
		return nil
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
