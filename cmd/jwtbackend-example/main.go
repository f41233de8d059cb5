// Command jwtbackend-example serves a protected and a public route behind the
// JWT middleware.
//
// Try it out with a token signed with JWT_SECRET:
//
//	JWT_SECRET=example go run ./cmd/jwtbackend-example
//	curl -H "Authorization: JWT $TOKEN" localhost:8080/auth
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/jwtbackend/go-jwt-backend/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		logrus.WithError(err).Fatal("invalid log level")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, err := setupHandler(cfg, logger, registry)
	if err != nil {
		logger.WithError(err).Fatal("failed to set up handler")
	}

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":      cfg.HTTP.Addr,
			"scheme":    cfg.JWT.Scheme,
			"algorithm": cfg.JWT.Algorithm,
			"backend":   cfg.JWT.Backend,
		}).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
