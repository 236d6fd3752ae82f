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

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/meetsplit/internal/auth"
	"github.com/mmynk/meetsplit/internal/billing"
	"github.com/mmynk/meetsplit/internal/config"
	"github.com/mmynk/meetsplit/internal/middleware"
	"github.com/mmynk/meetsplit/internal/service"
	"github.com/mmynk/meetsplit/internal/storage/sqlstore"
	"github.com/mmynk/meetsplit/pkg/api/apiconnect"
	"github.com/mmynk/meetsplit/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlstore.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rpcMetrics := middleware.NewRPCMetrics(registry)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)
	engine := billing.NewEngine(store, billing.NewMetrics(registry))

	opts := connect.WithInterceptors(
		rpcMetrics.Interceptor(),
		middleware.RequireAuth(jwtManager, service.PublicProcedures...),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewUserServiceHandler(
		service.NewUserService(store, authenticator, jwtManager, cfg.PublicURL, slog.Default()), opts))
	mux.Handle(apiconnect.NewMeetingServiceHandler(service.NewMeetingService(store), opts))
	mux.Handle(apiconnect.NewParticipantServiceHandler(service.NewParticipantService(store), opts))
	mux.Handle(apiconnect.NewFeedbackServiceHandler(service.NewFeedbackService(store), opts))
	mux.Handle(apiconnect.NewCheckServiceHandler(service.NewCheckService(store, engine), opts))

	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// h2c serves HTTP/2 without TLS for gRPC clients.
	handler := h2c.NewHandler(middleware.CORS(cfg.CORSOrigins, mux), &http2.Server{})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "env", cfg.Env, "url", cfg.PublicURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
