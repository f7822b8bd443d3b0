package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/symplace/symplace/pkg/api"
	"github.com/symplace/symplace/pkg/cache"
	"github.com/symplace/symplace/pkg/pipeline"
	"github.com/symplace/symplace/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // redis address for a shared cache (optional)
	mongo   string // mongo URI for the run archive (optional)
	noCache bool   // disable caching entirely
}

// newServeCmd creates the serve command that exposes the placement
// pipeline as an HTTP API.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placement pipeline over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "mongo URI for the run archive")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	var c cache.Cache
	switch {
	case opts.noCache:
		c = cache.NewNullCache()
	case opts.redis != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redis})
		if err != nil {
			return err
		}
		c = rc
		logger.Info("using redis cache", "addr", opts.redis)
	default:
		fc, err := openCache(false)
		if err != nil {
			return err
		}
		c = fc
	}

	var st store.Store
	if opts.mongo != "" {
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongo})
		if err != nil {
			return err
		}
		defer func() { _ = ms.Close(context.Background()) }()
		st = ms
		logger.Info("archiving runs to mongo")
	}

	runner := pipeline.NewRunner(c, nil, logger)
	runner.Store = st
	defer runner.Close()

	server := api.NewServer(runner, st, logger)
	return server.Serve(ctx, opts.addr)
}
