package cmd

import (
	"log/slog"

	"github.com/nfrund/profilepage/internal/app"
	"github.com/nfrund/profilepage/internal/prerender"
	"github.com/nfrund/profilepage/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Runs the HTTP server on APP_ADDR. When PRERENDER_ON_CHANGE is set, every
profile update received through the API re-renders the build directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		deps := app.NewDependencies(cfg)
		defer deps.Close()

		s, err := server.New(server.Dependencies{
			Config:    cfg,
			Profiles:  deps.Profiles,
			Publisher: deps.Bus,
			Modules:   app.NewModules(),
		})
		if err != nil {
			return err
		}

		if cfg.GetPrerenderOnChange() {
			builder := prerender.NewBuilder(s.InProcessFetcher(), deps.Output, slog.Default())
			if err := prerender.RebuildOnChange(ctx, deps.Bus, builder, s.PrerenderPaths()); err != nil {
				return err
			}
			slog.Info("rebuilding prerendered pages on profile changes", "dir", cfg.GetBuildDir())
		}

		return s.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
