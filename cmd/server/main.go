package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damacus/iron-files/internal/config"
	"github.com/damacus/iron-files/internal/handlers"
	"github.com/damacus/iron-files/internal/logger"
	customMiddleware "github.com/damacus/iron-files/internal/middleware"
	"github.com/damacus/iron-files/internal/services"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	e, err := newServer(cfg, &services.RealStorageFactory{}, log)
	if err != nil {
		log.Fatal("build server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server",
			zap.String("addr", cfg.ListenAddr),
			zap.String("backend", cfg.Storage.Backend),
			zap.String("bucket", cfg.Storage.Bucket),
		)
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

func newServer(cfg *config.Config, factory services.StorageFactory, log *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(log)

	// Services
	client, err := factory.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	files := services.NewFileService(client)

	filesHandler := handlers.NewFilesHandler(files, log)
	foldersHandler := handlers.NewFoldersHandler(files, log)
	configHandler := handlers.NewConfigHandler(cfg.Storage)
	statusHandler := handlers.NewStatusHandler(factory, cfg.Storage, log)

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(customMiddleware.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.SecurityHeaders())
	if cfg.CSRFEnabled {
		e.Use(customMiddleware.CSRF())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	api := e.Group("/api")
	api.GET("/config", configHandler.Get)
	api.GET("/storage/status", statusHandler.Get)

	// Files
	api.GET("/files/list", filesHandler.List)
	api.POST("/files/upload", filesHandler.Upload)
	api.POST("/files/download", filesHandler.Download)
	api.POST("/files/delete", filesHandler.Delete)
	api.POST("/files/rename", filesHandler.Rename)
	api.POST("/files/share", filesHandler.Share)

	// Folders
	api.POST("/folders/create", foldersHandler.Create)
	api.GET("/folders/zip", foldersHandler.Zip)

	return e, nil
}
