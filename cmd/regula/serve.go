package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aretw0/regula/internal/cli"
	"github.com/aretw0/regula/internal/presentation/tui"
	httpAdapter "github.com/aretw0/regula/pkg/adapters/http"
	"github.com/aretw0/regula/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the conversions as a JSON API, with Prometheus metrics at /metrics
and the OpenAPI document at /openapi.yaml. Requests under /api are rate limited
per client when http.rate_limit.requests is set, through Redis when redis.addr is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			appConfig.HTTP.Port, _ = cmd.Flags().GetInt("port")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		metrics := observability.NewMetrics()
		eng, err := cli.NewEngine(appConfig, logger, metrics)
		if err != nil {
			return err
		}

		limiter, closeLimiter, err := cli.NewRateLimiter(ctx, appConfig, logger)
		if err != nil {
			return err
		}
		defer closeLimiter()

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(metrics.Handler()),
			httpAdapter.WithMaxBodySize(appConfig.HTTP.MaxBodySize),
		}
		if limiter != nil {
			opts = append(opts, httpAdapter.WithRateLimiter(limiter))
		}
		if c := eng.Catalog(); c != nil {
			opts = append(opts, httpAdapter.WithCatalog(c))
		}

		srv := &http.Server{
			Addr:              ":" + strconv.Itoa(appConfig.HTTP.Port),
			Handler:           httpAdapter.NewHandler(eng, opts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(cmd.ErrOrStderr())
			logger.Info("Starting Regula Server", "address", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Start shutdown")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Regula Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides http.port)")
}
