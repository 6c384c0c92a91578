package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"skillindex/internal/handler"
	"skillindex/internal/hub"
	"skillindex/internal/service"
	"skillindex/internal/watcher"
)

var (
	serveAddr  string
	serveWatch bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild when the skills index changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	watch := cfg.Watch.Enabled || serveWatch

	logger.Info("starting skillindex server", "config", cfg.Summary())

	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Event bus feeds the SSE hub
	eventBus := service.NewEventBus()
	sseHub := hub.New(logger)
	hubDone := make(chan struct{})
	defer close(hubDone)
	go sseHub.Run(hubDone)

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go hub.Forward(sseHub, eventChan)

	svc := service.NewIndexService(newClassifier(), repo, eventBus, logger)
	opts := syncOptions()

	if watch {
		if fileExists(opts.IndexPath) {
			// Sync logs and publishes its own failures
			_, _ = svc.Sync(ctx, opts)
		}
		w := watcher.New(opts.IndexPath, func() {
			_, _ = svc.Sync(ctx, opts)
		}, logger).WithDebounce(cfg.Watch.Debounce.Duration())
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("watcher stopped", "error", err)
			}
		}()
	}

	// Setup routes
	mux := http.NewServeMux()
	handler.NewIndexHandler(svc, opts, logger).Register(mux)
	mux.Handle("GET /events", sseHub)
	mux.Handle("GET /metrics", promhttp.Handler())

	finalHandler := handler.Chain(mux,
		handler.Recover(logger),
		handler.CORS,
		handler.Logger(logger),
	)

	// WriteTimeout stays zero so SSE streams are not cut off; request
	// contexts derive from ctx so open streams end on shutdown
	server := &http.Server{
		Addr:              addr,
		Handler:           finalHandler,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
	return nil
}
