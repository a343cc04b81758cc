package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/infographic/pkg/cache"
	"github.com/matzehuels/infographic/pkg/gallery"
	"github.com/matzehuels/infographic/pkg/observability"
	"github.com/matzehuels/infographic/pkg/pipeline"
	"github.com/matzehuels/infographic/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string
	redisAddr  string // artifact cache in Redis instead of on disk
	mongoURI   string // gallery in MongoDB instead of on disk
	galleryDir string
	noCache    bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      server.DefaultAddr,
		redisAddr: envOr(envRedisAddr, ""),
		mongoURI:  envOr(envMongoURI, ""),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API for rendering specs and keeping a gallery of saved specs.

Artifacts are cached on disk unless --redis is given. The gallery is stored
on disk unless --mongo is given.`,
		Example: `  infographic serve
  infographic serve --addr :9000 --redis localhost:6379 --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", opts.redisAddr, "Redis address for the artifact cache (env "+envRedisAddr+")")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", opts.mongoURI, "MongoDB URI for the gallery (env "+envMongoURI+")")
	cmd.Flags().StringVar(&opts.galleryDir, "gallery-dir", "", "gallery directory when not using MongoDB")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	artifacts, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(artifacts, newKeyer(), c.Logger)
	defer runner.Close()

	store, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	printKeyValue("Address", opts.addr)
	printKeyValue("Cache", cacheBackend(opts))
	printKeyValue("Gallery", storeBackend(opts))

	srv := server.New(server.Config{
		Runner: runner,
		Store:  store,
		Logger: c.Logger,
	})
	return srv.ListenAndServe(ctx, opts.addr)
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr, Prefix: appName + ":"})
		if err != nil {
			return nil, err
		}
		c.Logger.Info("artifact cache", "backend", "redis", "addr", opts.redisAddr)
		return rc, nil
	}
	fc, err := newCache(false)
	if err != nil {
		return nil, err
	}
	if f, ok := fc.(*cache.FileCache); ok {
		c.Logger.Info("artifact cache", "backend", "file", "dir", f.Dir())
	}
	return fc, nil
}

func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (gallery.Store, error) {
	if opts.mongoURI != "" {
		ms, err := gallery.NewMongoStore(ctx, gallery.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return nil, err
		}
		c.Logger.Info("gallery", "backend", "mongo")
		return ms, nil
	}
	fs, err := gallery.NewFileStore(opts.galleryDir)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("gallery", "backend", "file", "dir", fs.Path())
	return fs, nil
}

func cacheBackend(opts serveOpts) string {
	switch {
	case opts.noCache:
		return "disabled"
	case opts.redisAddr != "":
		return "redis " + opts.redisAddr
	}
	return "file"
}

func storeBackend(opts serveOpts) string {
	switch {
	case opts.mongoURI != "":
		return "mongo"
	case opts.galleryDir != "":
		return "file " + opts.galleryDir
	}
	return "file"
}
