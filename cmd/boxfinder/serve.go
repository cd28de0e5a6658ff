package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fortuna/boxfinder/internal/api/rest"
	"github.com/fortuna/boxfinder/internal/api/websocket"
	"github.com/fortuna/boxfinder/internal/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket search API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "listen port")
	serveCmd.Flags().String("redis-url", "", "Redis URL for shared rate limiting; in-memory when empty")

	v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	v.BindPFlag("redis_url", serveCmd.Flags().Lookup("redis-url"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.String("version", serviceVersion),
		zap.String("transport", cfg.Transport),
		zap.Bool("parallel", cfg.ResolverParallel),
		zap.Bool("reference_scrape", cfg.ReferenceScrape),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	checks := map[string]rest.HealthCheck{}
	if a.atlas != nil {
		checks["atlas"] = a.atlas.HealthCheck
	}

	var limiter ratelimit.Limiter = ratelimit.NewMemory(cfg.RateLimitPerMinute)
	if cfg.RedisURL != "" {
		redisLimiter, err := connectRedis(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer redisLimiter.Close()
		logger.Info("connected to redis")
		limiter = redisLimiter
		checks["redis"] = redisLimiter.HealthCheck
	}

	server := rest.NewServer(cfg.Port, a.search, rest.Options{
		Limiter: limiter,
		Metrics: a.metrics,
		Checks:  checks,
		Socket:  websocket.NewServer(a.search, logger),
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		return err
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("stopped")
	return nil
}
