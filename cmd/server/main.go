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

	"golang.org/x/sync/errgroup"

	"scaflow/internal/attempts"
	"scaflow/internal/backend"
	"scaflow/internal/consentmgmt"
	"scaflow/internal/platform/config"
	"scaflow/internal/platform/httpserver"
	"scaflow/internal/platform/logger"
	"scaflow/internal/platform/metrics"
	"scaflow/internal/platform/redis"
	"scaflow/internal/sca/decoupled"
	"scaflow/internal/sca/engine"
	"scaflow/internal/sca/handler"
	"scaflow/internal/sca/multilevel"
	httptransport "scaflow/internal/transport/http"
	"scaflow/pkg/platform/circuit"
)

// main only wires dependencies and owns the server lifecycle. All
// authorisation logic lives under internal/sca.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.IsProduction())
	m := metrics.New()

	health := map[string]httptransport.HealthChecker{}

	var gateway backend.Gateway
	if cfg.SandboxMode {
		log.Warn("sandbox mode enabled, using in-process backend")
		gateway = backend.NewSandbox("scaflow", log)
	} else {
		client, err := backend.NewClient(cfg.BackendBaseURL,
			backend.WithHTTPClient(&http.Client{Timeout: cfg.BackendTimeout}),
			backend.WithLogger(log),
			backend.WithBreaker(circuit.New("core-banking", circuit.WithFailureThreshold(5))),
		)
		if err != nil {
			return err
		}
		gateway = client
	}

	var store attempts.Store = attempts.NewMemoryStore(cfg.AttemptWindow)
	if cfg.RedisURL != "" {
		redisClient, err := redis.New(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		store = attempts.NewRedisStore(redisClient.Client, cfg.AttemptWindow)
		health["redis"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Health(ctx)
		}
	}
	tracker, err := attempts.New(store, cfg.MaxLoginAttempts, attempts.WithLogger(log))
	if err != nil {
		return err
	}

	notifier := consentmgmt.NewNotifier(cfg.ConsentManagementURL, &http.Client{Timeout: 10 * time.Second}, log)

	eng, err := engine.New(gateway, multilevel.NewPolicy(gateway), notifier, tracker,
		engine.WithLogger(log),
		engine.WithMetrics(m),
		engine.WithDecoupledBuilder(decoupled.NewMessageBuilder(cfg.DecoupledURLTemplate)),
	)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(log, health, handler.New(eng, gateway, log))
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", cfg.Addr, "sandbox", cfg.SandboxMode)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
