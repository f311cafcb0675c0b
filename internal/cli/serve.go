package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/boradatti/gummygrid/internal/server"
	"github.com/boradatti/gummygrid/pkg/cache"
	"github.com/boradatti/gummygrid/pkg/gummygrid"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string        // listen address
	config    string        // TOML configuration file path
	cacheKind string        // cache backend: none, file, redis, mongo
	redisAddr string        // redis host:port
	mongoURI  string        // mongodb connection URI
	ttl       time.Duration // cached avatar lifetime
}

// serveCommand creates the serve command, which runs the avatar HTTP
// service until the context is canceled.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the avatar HTTP service",
		Long: `Run the avatar HTTP service.

Avatars are served at /v1/avatar/{seed} with optional rows, cols, salt,
and size query parameters. Rendered documents are cached in the selected
backend, keyed by seed and effective configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML configuration file")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", cacheBackendFile,
		"cache backend: none, file, redis, mongo")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "localhost:6379", "redis address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "mongodb://localhost:27017", "mongodb URI")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 24*time.Hour, "cached avatar lifetime (0 = no expiry)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	baseCfg := gummygrid.Config{}
	if opts.config != "" {
		loaded, err := LoadConfig(opts.config)
		if err != nil {
			return err
		}
		baseCfg = loaded
	}

	store, err := openCache(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &http.Server{
		Addr: opts.addr,
		Handler: server.New(server.Options{
			BaseConfig: baseCfg,
			Cache:      store,
			CacheTTL:   opts.ttl,
			Logger:     logger,
		}).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving avatars", "addr", opts.addr, "cache", opts.cacheKind)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// openCache constructs the cache backend selected by --cache.
func openCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch opts.cacheKind {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendFile:
		return newFileCache()
	case cacheBackendRedis:
		return cache.NewRedisCache(ctx, opts.redisAddr)
	case cacheBackendMongo:
		return cache.NewMongoCache(ctx, opts.mongoURI)
	}
	return nil, fmt.Errorf("unknown cache backend %q", opts.cacheKind)
}
