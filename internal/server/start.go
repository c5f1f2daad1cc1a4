package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Start serves until ctx is cancelled, SIGINT/SIGTERM arrives or the server
// stops on its own, then shuts down gracefully within the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Cancelled when the serve loop exits, so a direct Shutdown also ends Start.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		s.logger.InfoContext(ctx, "starting server", "addr", s.Cfg.GetAppAddr())
		if err := s.E.Start(s.Cfg.GetAppAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return s.Shutdown(context.WithoutCancel(ctx))
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Info("shutdown gracefully")
	return nil
}

// Shutdown stops the HTTP server and then every module.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.Cfg.GetShutdownTimeout())
	defer cancel()

	err := s.E.Shutdown(ctx)
	for _, m := range s.Modules {
		if merr := m.Shutdown(ctx); merr != nil {
			s.logger.ErrorContext(ctx, "module shutdown failed", "module", m.Name(), "error", merr)
			err = errors.Join(err, merr)
		}
	}
	return err
}
