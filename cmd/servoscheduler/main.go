// Command servoscheduler runs the actuator scheduler process: it loads
// the fleet document, starts one engine worker per actuator, and serves
// the RPC surface over HTTP until a shutdown signal arrives.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/corax26/servoscheduler/adapter/httpapi"
	"github.com/corax26/servoscheduler/internal/app"
	"github.com/corax26/servoscheduler/internal/config"
	"github.com/corax26/servoscheduler/internal/observability"
)

func main() {
	logger := observability.LoggerFromEnv(os.Getenv)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	fleetDoc, err := config.LoadFleet(cfg.FleetPath)
	if err != nil {
		logger.Error("failed to load fleet document", "path", cfg.FleetPath, "error", err)
		os.Exit(1)
	}

	fleet, err := app.BringUp(cfg, fleetDoc, logger)
	if err != nil {
		logger.Error("failed to bring up fleet", "error", err)
		os.Exit(1)
	}

	httpCfg := httpapi.DefaultServerConfig()
	httpCfg.Addr = cfg.ListenAddr
	httpServer := httpapi.NewServer(httpCfg, fleet.Server, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("http server failed", "error", err)
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	}

	shutdown(httpServer, fleet, logger)
}

func shutdown(httpServer *httpapi.Server, fleet *app.Fleet, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownGracePeriod)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Warn("http server shutdown error", "error", err)
	}
	if err := fleet.Server.Shutdown(ctx); err != nil {
		logger.Warn("fleet shutdown error", "error", err)
	}
}
