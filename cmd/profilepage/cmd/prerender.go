package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/nfrund/profilepage/internal/app"
	"github.com/nfrund/profilepage/internal/config"
	"github.com/nfrund/profilepage/internal/modules/profile"
	"github.com/nfrund/profilepage/internal/prerender"
	"github.com/nfrund/profilepage/internal/server"
	"github.com/nfrund/profilepage/internal/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var prerenderFlags struct {
	origin string
	out    string
	watch  bool
}

var prerenderCmd = &cobra.Command{
	Use:   "prerender",
	Short: "Render prerenderable pages into the build directory",
	Long: `Runs every prerenderable page's loader at build time and writes index.html
and __data.json for each page.

By default the loader fetches /api/profile in-process from the stored profile.
With --origin it fetches from a running server instead, which must be reachable
from the build environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		deps := app.NewDependencies(cfg)
		defer deps.Close()

		var fetcher profile.Fetcher
		if prerenderFlags.origin != "" {
			f, err := profile.NewHTTPFetcher(prerenderFlags.origin, nil)
			if err != nil {
				return err
			}
			fetcher = f
		}

		s, err := server.New(server.Dependencies{
			Config:   cfg,
			Profiles: deps.Profiles,
			Modules:  app.NewModules(),
			Fetcher:  fetcher,
		})
		if err != nil {
			return err
		}

		out := deps.Output
		if prerenderFlags.out != "" {
			out = storage.NewDirStore(prerenderFlags.out)
		}
		builder := prerender.NewBuilder(s.InProcessFetcher(), out, slog.Default())
		paths := s.PrerenderPaths()

		files, err := builder.Build(ctx, paths)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		if !prerenderFlags.watch {
			return nil
		}

		// Rebuild whenever the profile file changes until interrupted.
		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := prerender.RebuildOnChange(ctx, deps.Bus, builder, paths); err != nil {
			return err
		}
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return prerender.NewWatcher(config.ProfilePath(cfg), deps.Bus, slog.Default()).Run(ctx)
		})
		return g.Wait()
	},
}

func init() {
	prerenderCmd.Flags().StringVar(&prerenderFlags.origin, "origin", "", "fetch data from this origin instead of in-process (e.g. http://localhost:8080)")
	prerenderCmd.Flags().StringVar(&prerenderFlags.out, "out", "", "output directory (defaults to BUILD_DIR)")
	prerenderCmd.Flags().BoolVar(&prerenderFlags.watch, "watch", false, "keep running and rebuild when the profile file changes")
	rootCmd.AddCommand(prerenderCmd)
}
