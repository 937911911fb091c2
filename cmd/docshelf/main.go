package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docshelf/internal/config"
	dbValkey "github.com/kailas-cloud/docshelf/internal/db/valkey"
	logpkg "github.com/kailas-cloud/docshelf/internal/logger"
	"github.com/kailas-cloud/docshelf/internal/metrics"
	catalogrepo "github.com/kailas-cloud/docshelf/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/docshelf/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/docshelf/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/docshelf/internal/usecase/health"
	"github.com/kailas-cloud/docshelf/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docshelf API server",
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	ctx := context.Background()

	// Catalog source (composition root)
	var (
		source catalogrepo.Source
		pinger healthuc.DBPinger
	)
	switch cfg.Catalog.Source {
	case config.SourceValkey:
		store, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:      cfg.Database.Addrs,
			Username:   cfg.Database.Username,
			Password:   cfg.Database.Password,
			Standalone: cfg.Database.Standalone,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database", zap.Strings("addrs", cfg.Database.Addrs))

		source = catalogrepo.NewKVSource(store, cfg.Catalog.Key)
		pinger = store
	default:
		source = catalogrepo.NewFileSource(cfg.Catalog.Path)
	}

	metrics.RegisterCatalogMetrics()

	catalogSvc := cataloguc.New(catalogrepo.New(source)).
		WithCollation(cfg.Catalog.Collation).
		WithDuplicatePolicy(cataloguc.DuplicatePolicy(cfg.Catalog.DuplicateIDs)).
		WithLogger(logger.Named("catalog")).
		WithRecorder(metrics.CatalogRecorder{})

	// A bad catalog is a startup failure, not a per-request one.
	if err := catalogSvc.Warm(ctx); err != nil {
		logger.Fatal("Failed to load catalog", zap.String("source", source.Location()), zap.Error(err))
	}

	healthSvc := healthuc.New(catalogSvc, pinger)
	server := chiTransport.NewServer(catalogSvc, healthSvc, logger)

	r := chiTransport.NewRouter(server, chiTransport.RouterOptions{
		Middlewares: []func(http.Handler) http.Handler{
			jsonRecoverer(logger),
			chiMiddleware.RequestID,
			wideEventMiddleware(logger),
			metrics.Middleware(),
		},
		CORS: chiTransport.CORSConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: cfg.CORS.AllowedMethods,
			AllowedHeaders: cfg.CORS.AllowedHeaders,
			MaxAgeSec:      cfg.CORS.MaxAgeSec,
		},
		StaticDir:    cfg.Static.PDFDir,
		StaticPrefix: cfg.Static.Prefix,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{"error": "Internal error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
