// Command stubd runs a development double of the academic backend: the
// wire contract the console depends on, seeded demo accounts, in-memory
// records, and Redis-backed bearer tokens. When no Redis address is
// configured an embedded miniredis instance is used, so the stub runs
// with zero setup.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/sistema-academico/academico-console/internal/app"
	"github.com/sistema-academico/academico-console/internal/backendstub"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	redisAddr := cfg.StubRedisAddr
	if redisAddr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			logger.Error("start embedded redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer mr.Close()
		redisAddr = mr.Addr()
		logger.Info("using embedded redis", slog.String("addr", redisAddr))
	}
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer client.Close()

	server, err := backendstub.NewServer(logger, client, backendstub.Options{
		TokenTTL:     cfg.StubTokenTTL,
		SeedPassword: cfg.StubSeedPassword,
		LoginRate:    cfg.StubLoginRate,
		LoginWindow:  cfg.StubLoginWindow,
	})
	if err != nil {
		logger.Error("build stub server", slog.Any("error", err))
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.StubAddr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("stub backend listening", slog.String("addr", cfg.StubAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("stub backend stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
