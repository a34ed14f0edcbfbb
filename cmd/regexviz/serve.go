package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"regexviz/internal/cache"
	"regexviz/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serves POST /compile, POST /simulate, GET /healthz and GET /metrics.
Export documents are cached in Redis when server.redis.addr is configured and
in memory otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
			}

			store, err := openCache(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer store.Close()

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           server.New(store,
					server.WithLogger(a.logger),
					server.WithNormalizer(a.cfg.Normalize),
					server.WithMaxPatternLength(a.cfg.Server.MaxPatternLength),
					server.WithTimeout(a.cfg.Server.Timeout),
				).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("starting server", "addr", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(shutdown)

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server: %w", err)
			case sig := <-shutdown:
				a.logger.Info("shutting down", "signal", sig.String())
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					a.logger.Error("graceful shutdown did not complete", "error", err)
					return srv.Close()
				}
				a.logger.Info("server stopped")
				return nil
			}
		},
	}
	cmd.Flags().String("addr", ":8080", "Address to listen on")
	return cmd
}

func openCache(ctx context.Context, a *app) (cache.Store, error) {
	rc := a.cfg.Server.Redis
	if rc.Addr == "" {
		a.logger.Info("using in-memory cache", "ttl", a.cfg.Server.CacheTTL)
		return cache.NewMemory(a.cfg.Server.CacheTTL), nil
	}
	store := cache.NewRedis(rc.Addr, rc.Password, rc.DB, cache.WithTTL(a.cfg.Server.CacheTTL))
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		store.Close()
		return nil, fmt.Errorf("connect redis %s: %w", rc.Addr, err)
	}
	a.logger.Info("using redis cache", "addr", rc.Addr, "db", rc.DB)
	return store, nil
}
