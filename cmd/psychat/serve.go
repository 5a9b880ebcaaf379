package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/psychat-dev/psychat/internal/config"
	"github.com/psychat-dev/psychat/internal/errors"
	"github.com/psychat-dev/psychat/internal/logger"
	"github.com/psychat-dev/psychat/internal/routes"
	"github.com/psychat-dev/psychat/pkg/middleware"
	"github.com/psychat-dev/psychat/pkg/router"
	"github.com/psychat-dev/psychat/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		address    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the navigation server",
		Long: `Start the HTTP and WebSocket navigation server.

Configuration is read from psychat.toml in the working directory, or
from the file given with --config. PSYCHAT_* environment variables
override file values.

Examples:
  psychat serve
  psychat serve --config=/etc/psychat.toml
  psychat serve --address=:9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Server.Address = address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default psychat.toml)")
	cmd.Flags().StringVarP(&address, "address", "a", "", "Address to listen on (overrides config)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := logger.New(os.Stderr, cfg.Logging)

	table, err := routes.New()
	if err != nil {
		return errors.FromError(err, "P200")
	}

	srv := server.New(table, serverConfig(cfg), buildOptions(cfg, log)...)

	if path := cfg.Path(); path != "" {
		log.Info("configuration loaded", "file", path)
	}
	if err := srv.Run(ctx); err != nil {
		return errors.New("P300").Wrap(err)
	}
	return nil
}

// serverConfig maps file configuration onto the server's runtime config.
func serverConfig(cfg *config.Config) *server.Config {
	sc := server.DefaultConfig()
	sc.Address = cfg.Server.Address
	sc.ShutdownTimeout = cfg.Server.ShutdownTimeoutDuration()
	sc.ReadHeaderTimeout = cfg.Server.ReadHeaderTimeoutDuration()
	sc.StaticDir = cfg.Server.StaticDir
	sc.ReadBufferSize = cfg.WebSocket.ReadBufferSize
	sc.WriteBufferSize = cfg.WebSocket.WriteBufferSize
	sc.MaxMessageSize = cfg.WebSocket.MaxMessageSize
	sc.WriteTimeout = cfg.WebSocket.WriteTimeoutDuration()
	sc.AllowedOrigins = cfg.WebSocket.AllowedOrigins
	return sc
}

// buildOptions assembles the resolver chain: tracing outermost, then
// metrics, then logging.
func buildOptions(cfg *config.Config, log *slog.Logger) []server.Option {
	var chain []router.Middleware
	opts := []server.Option{server.WithLogger(log)}

	if cfg.Tracing.IsEnabled() {
		chain = append(chain, middleware.OpenTelemetry(
			middleware.WithTracerName(cfg.Tracing.TracerName),
		))
	}

	if cfg.Metrics.IsEnabled() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := middleware.NewMetrics(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(reg),
		)
		chain = append(chain, m.Middleware())
		opts = append(opts, server.WithMetrics(m, reg))
	}

	chain = append(chain, middleware.Logging(log))
	return append(opts, server.WithResolverMiddleware(chain...))
}
