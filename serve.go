package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/farrowscore/api/config"
	"github.com/farrowscore/api/controller"
	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/router"
	"github.com/farrowscore/api/service"
	"github.com/farrowscore/api/util"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.InitConfig(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.GetConfig()

	if err := logger.InitLogger(logger.Options{Dir: cfg.Log.Dir, Level: cfg.Log.Level, Console: cfg.Log.Console}); err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := &backends{}
	defer b.close()

	cacheStore, err := b.cacheStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize cache store: %w", err)
	}
	txStore, err := b.transactionStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize transaction store: %w", err)
	}
	provider, err := paymentProvider(cfg)
	if err != nil {
		return err
	}
	auditSvc, err := auditService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize audit service: %w", err)
	}

	eventBus := util.NewEventBus()

	services, err := service.InitializeServices(
		cfg,
		cacheStore,
		txStore,
		provider,
		auditSvc,
		util.NewValidationUtil(),
		util.NewNotificationService(),
		eventBus,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	controllers := controller.InitializeControllers(services)

	var limiterClient redis.UniversalClient
	if b.redis != nil {
		limiterClient = b.redis
	}

	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, services.Access, limiterClient, cfg.Server.RateLimit, cfg.Server.RateLimitWindow)
	if len(cfg.Server.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
			return fmt.Errorf("invalid server.trustedProxies: %w", err)
		}
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("cache", cfg.Cache.Backend),
			zap.String("store", cfg.Payments.Store),
			zap.String("provider", cfg.Payments.Provider))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	if err := eventBus.Drain(shutdownCtx); err != nil {
		logger.Warn("Event deliveries still running at shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
	return nil
}
