package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vulchevd/web.io/internal/config"
	mw "github.com/vulchevd/web.io/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var renderPath string
	flag.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "HTTP listen address")
	flag.StringVar(&cfg.Site.Dir, "site", cfg.Site.Dir, "directory holding the page documents, assets and images")
	flag.StringVar(&cfg.Site.ContentDir, "content", cfg.Site.ContentDir, "markdown content directory")
	flag.StringVar(&renderPath, "render", "", "render one page file in file-system mode to stdout and exit")
	flag.Parse()

	logger, err := mw.NewLogger("web")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	srv, err := newServer(cfg, logger)
	if err != nil {
		logger.Fatal("initialise server", zap.Error(err))
	}
	defer func() {
		if err := srv.close(); err != nil {
			logger.Warn("close redis", zap.Error(err))
		}
	}()

	if renderPath != "" {
		if err := srv.renderFile(context.Background(), renderPath, os.Stdout); err != nil {
			logger.Fatal("render", zap.String("file", renderPath), zap.Error(err))
		}
		return
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", httpServer.Addr))
	go func() {
		serverLogger.Info("web listening",
			zap.String("site", cfg.Site.Dir),
			zap.Bool("consent_audit", cfg.Consent.RedisURL != ""))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
