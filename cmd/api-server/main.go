// cmd/api-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"schemesathi/internal/api"
	"schemesathi/internal/bootstrap"
	"schemesathi/internal/common/camunda"
	"schemesathi/internal/common/config"
	"schemesathi/internal/common/logger"
	updateapplicationstatus "schemesathi/internal/workers/application/update-application-status"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	backends, err := bootstrap.Connect(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("backend connection failed", zap.Error(err))
	}
	defer backends.Close()

	// Status changes made over HTTP are published to the process when the broker is reachable.
	var publisher updateapplicationstatus.MessagePublisher
	var zeebe *camunda.Client
	err = bootstrap.RetryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.Plaintext,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 3, time.Second, log, "Zeebe client initialization")
	if err != nil {
		zapLog.Warn("running without status-change messages", zap.Error(err))
	} else {
		publisher = zeebe
		defer zeebe.Close()
	}

	deps, err := bootstrap.NewDependencies(ctx, cfg, backends, publisher, log)
	if err != nil {
		zapLog.Fatal("dependency init failed", zap.Error(err))
	}
	handlers, err := bootstrap.NewHandlers(cfg, deps, log)
	if err != nil {
		zapLog.Fatal("handler init failed", zap.Error(err))
	}

	server := api.NewServer(handlers.Catalog, handlers.API(), log)

	addr := cfg.Server.APIAddress
	if addr == "" {
		addr = ":8081"
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		zapLog.Info("API server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("API server shutdown failed", zap.Error(err))
	}
	zapLog.Info("API server stopped")
}
