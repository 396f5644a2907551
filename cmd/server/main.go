package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/erickmmolina/baby-shower-registry/internal/common/config"
	"github.com/erickmmolina/baby-shower-registry/internal/common/logger"
	"github.com/erickmmolina/baby-shower-registry/internal/common/middleware"
	eventhttp "github.com/erickmmolina/baby-shower-registry/internal/features/event/delivery/http"
	eventservice "github.com/erickmmolina/baby-shower-registry/internal/features/event/service"
	registryhttp "github.com/erickmmolina/baby-shower-registry/internal/features/registry/delivery/http"
	registryservice "github.com/erickmmolina/baby-shower-registry/internal/features/registry/service"
	"github.com/erickmmolina/baby-shower-registry/internal/platform/blob"
)

func main() {
	cfg := config.Load()
	logger.Init("baby-shower-registry", cfg.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := blob.New(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to open blob store")
	}
	logger.Info().Str("backend", cfg.Store.Backend).Msg("blob store ready")

	registrySvc := registryservice.NewRegistryService(store, registryservice.Options{
		MaxRetries: cfg.Registry.MaxRetries,
		RetryWait:  cfg.Registry.RetryWait,
		Timeout:    cfg.Registry.Timeout,
	})
	eventSvc := eventservice.NewEventService(store)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.Server.Origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	root := router.Group("")
	registryhttp.NewRegistryHandler(registrySvc).RegisterRoutes(root)
	eventhttp.NewEventHandler(eventSvc).RegisterRoutes(root)

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unready", "error": "store unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	if closer, ok := store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	logger.Info().Msg("server exited")
}
