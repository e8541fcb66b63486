package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbonfront/internal/config"
	"carbonfront/internal/handler"
	"carbonfront/internal/logger"
	"carbonfront/internal/processor"
	"carbonfront/internal/router"
	"carbonfront/internal/service"
	"carbonfront/internal/session"
	"carbonfront/internal/web"
)

// @title Carbonfront API
// @version 1.0
// @description Front end for the emissions processing service: single PDF curation and bulk ZIP processing.
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zapLog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zapLog.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Templates and embedded copy
	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	intro, err := web.Markdown("landing.md")
	if err != nil {
		return fmt.Errorf("failed to render landing copy: %w", err)
	}
	help, err := web.Markdown("bulk_help.md")
	if err != nil {
		return fmt.Errorf("failed to render bulk help: %w", err)
	}

	// Processing service client
	client := processor.NewClient(&cfg.Processor, zapLog)

	// Initialize services
	singleSvc := service.NewSingleService(client, &cfg.Upload, zapLog)
	bulkSvc := service.NewBulkService(client, &cfg.Upload, zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Page sessions
	store := session.NewStore(cfg.Session.TTL, zapLog)
	go store.Run(ctx, cfg.Session.SweepInterval)

	// Initialize handlers
	pageH := handler.NewPageHandler(tmpl, intro, help, singleSvc, bulkSvc, &cfg.Upload, zapLog)
	singleH := handler.NewSingleHandler(singleSvc, &cfg.Upload)
	bulkH := handler.NewBulkHandler(bulkSvc, &cfg.Upload)
	healthH := handler.NewHealthHandler(client)

	// Setup router
	r := router.Setup(cfg, zapLog, store, pageH, singleH, bulkH, healthH)

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLog.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("processor", cfg.Processor.BaseURL),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zapLog.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	zapLog.Info("server stopped")
	return nil
}
