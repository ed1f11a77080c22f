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

	"github.com/prometheus/client_golang/prometheus"

	"rbconsole/internal/audit"
	httpapi "rbconsole/internal/http"
	"rbconsole/internal/platform/config"
	"rbconsole/internal/platform/httpserver"
	"rbconsole/internal/platform/kafka"
	"rbconsole/internal/platform/logger"
	"rbconsole/internal/platform/metrics"
	"rbconsole/internal/proxy"
)

// main wires the gateway: config, logging, metrics, the audit pipeline and
// the proxied API routes. Forwarding logic lives in internal/proxy.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if cfg.Metrics {
		m = metrics.New()
		gatherer = prometheus.DefaultGatherer
	}

	var checks []httpapi.HealthCheck
	var proxyOpts []proxy.Option
	if cfg.Audit.Enabled {
		store, closeStore, check, err := auditStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()
		if check != nil {
			checks = append(checks, *check)
		}
		publisher := audit.NewPublisher(store,
			audit.WithAsyncBuffer(cfg.Audit.AsyncBuffer),
			audit.WithLogger(log),
			audit.WithMetrics(m),
		)
		defer publisher.Close()
		proxyOpts = append(proxyOpts, proxy.WithAuditor(publisher))
	}

	proxyOpts = append(proxyOpts,
		proxy.WithLogger(log),
		proxy.WithMetrics(m),
		proxy.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		proxy.WithCookie(cfg.CookieName, cfg.CookieSecure),
	)
	handler, err := proxy.New(cfg.UpstreamURL, proxyOpts...)
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:   log,
		Metrics:  m,
		Gatherer: gatherer,
		Routes:   []httpapi.Registrar{handler},
		Health:   checks,
	})
	srv := httpserver.New(cfg.Addr, router, cfg.HTTPTimeout)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting rbconsole gateway", "addr", cfg.Addr, "upstream", cfg.UpstreamURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// auditStore logs every event and, when brokers are configured, also
// publishes to Kafka.
func auditStore(ctx context.Context, cfg config.Server, log *slog.Logger) (audit.Store, func(), *httpapi.HealthCheck, error) {
	logStore := audit.NewLogStore(log)
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, nil, nil, err
	}
	if producer == nil {
		return logStore, func() {}, nil, nil
	}

	setupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := producer.EnsureTopic(setupCtx, 3, 1); err != nil {
		log.Warn("could not ensure audit topic", "topic", producer.Topic(), "error", err)
	}
	check := &httpapi.HealthCheck{Name: "kafka", Check: producer.Health}
	return audit.MultiStore{logStore, audit.NewKafkaStore(producer)}, producer.Close, check, nil
}
