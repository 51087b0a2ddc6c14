package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/config"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/jobstore"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/logger"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/server"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/source"
)

const shutdownTimeout = 10 * time.Second

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Run the HTTP API (/kickoff, /status, /analyze)",
	Description: `Start the HTTP API. Every route except /health requires
"Authorization: Bearer <token>"; set the token with LOCATOR_AUTH_TOKEN or
server.authToken in config.yaml.

Examples:
  LOCATOR_AUTH_TOKEN=secret locator-advisor serve
  locator-advisor --config ./config.yaml serve --port 8080`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Usage: "Listen port (default: config server.port or 3000)",
		},
	},
	Action: runServe,
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.String("port")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", ":"+cfg.Server.Port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", cfg.Server.Port, err)
	}
	fmt.Fprintf(c.App.ErrWriter, "%sListening on %s%s\n", color(colorCyan), ln.Addr(), color(colorReset))
	return serve(ctx, cfg, ln)
}

// serve runs the API on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	store := jobstore.NewMemoryStore(cfg.Store.TTL)
	fetcher := source.NewFetcher(source.Options{
		Timeout:     cfg.Fetch.Timeout,
		MaxRetries:  cfg.Fetch.MaxRetries,
		MaxBodySize: cfg.Fetch.MaxBodySize,
	})
	an := analyzer.New(analyzer.Options{
		Workers:             cfg.Analysis.Workers,
		IncludeDuplicateIDs: cfg.Analysis.IncludeDuplicateIDs,
	})

	httpServer := &http.Server{
		Handler:      server.New(*cfg, store, fetcher, an),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		store.RunCleanup(gctx, cfg.Store.CleanupInterval)
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting locator-advisor %s on %s", Version, ln.Addr())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
