package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/jwtbackend/go-jwt-backend"
	"github.com/jwtbackend/go-jwt-backend/core"
	"github.com/jwtbackend/go-jwt-backend/internal/config"
	"github.com/jwtbackend/go-jwt-backend/validator"
	"github.com/jwtbackend/go-jwt-backend/validator/jwtgo"
)

const (
	metricsPath = "/metrics"
	healthPath  = "/healthz"
)

func newValidator(cfg config.JWTConfig) (core.Validator, error) {
	algorithm, err := validator.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	if cfg.Backend == config.BackendJWTGo {
		return jwtgo.New(
			jwtgo.WithSecret([]byte(cfg.Secret)),
			jwtgo.WithAlgorithm(algorithm),
			jwtgo.WithAllowedClockSkew(cfg.Leeway),
			jwtgo.WithClaimsPolicy(validator.ClaimsPolicy{
				UsernameClaim: cfg.UsernameClaim,
				Issuer:        cfg.Issuer,
				Audience:      cfg.Audience,
			}),
		)
	}

	opts := []validator.Option{
		validator.WithSecret([]byte(cfg.Secret)),
		validator.WithAlgorithm(algorithm),
		validator.WithAllowedClockSkew(cfg.Leeway),
	}
	if cfg.UsernameClaim != "" {
		opts = append(opts, validator.WithUsernameClaim(cfg.UsernameClaim))
	}
	if cfg.Issuer != "" {
		opts = append(opts, validator.WithIssuer(cfg.Issuer))
	}
	if len(cfg.Audience) > 0 {
		opts = append(opts, validator.WithAudiences(cfg.Audience...))
	}
	return validator.New(opts...)
}

// setupHandler wires the routes of the example application. /auth requires a
// user, /no-auth answers anyone.
func setupHandler(cfg *config.Config, logger logrus.FieldLogger, registry *prometheus.Registry) (http.Handler, error) {
	v, err := newValidator(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the validator: %w", err)
	}

	opts := []jwtbackend.Option{
		jwtbackend.WithValidator(v),
		jwtbackend.WithScheme(cfg.JWT.Scheme),
		jwtbackend.WithExclusionUrls([]string{metricsPath, healthPath}),
		jwtbackend.WithLogger(jwtbackend.NewLogrusLogger(logger)),
		jwtbackend.WithMetrics(jwtbackend.NewPrometheusMetrics(registry)),
		jwtbackend.WithTracer(jwtbackend.NewOpenTelemetryTracer(otel.Tracer("jwtbackend-example"))),
	}
	if cfg.JWT.QueryParam != "" {
		opts = append(opts, jwtbackend.WithTokenExtractor(jwtbackend.MultiTokenExtractor(
			jwtbackend.AuthHeaderTokenExtractor(cfg.JWT.Scheme),
			jwtbackend.ParameterTokenExtractor(cfg.JWT.QueryParam),
		)))
	}

	jwtMiddleware, err := jwtbackend.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the middleware: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(jwtMiddleware.Handler)

	r.Method(http.MethodGet, metricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Get(healthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.With(jwtMiddleware.Requires()).Get("/auth", authHandler)
	r.Get("/no-auth", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"auth": nil})
	})

	return r, nil
}

func authHandler(w http.ResponseWriter, r *http.Request) {
	user := jwtbackend.MustGetUser(r.Context())
	writeJSON(w, map[string]any{
		"auth": map[string]any{"username": user.DisplayName()},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

func newLogger(cfg config.LoggingConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
