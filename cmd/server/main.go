// Package main runs the party registration funnel HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/2706msjk-ui/gilmo/config"
	"github.com/2706msjk-ui/gilmo/internal/auth"
	"github.com/2706msjk-ui/gilmo/internal/events"
	"github.com/2706msjk-ui/gilmo/internal/middleware"
	"github.com/2706msjk-ui/gilmo/internal/notifications"
	"github.com/2706msjk-ui/gilmo/internal/registrations"
	"github.com/2706msjk-ui/gilmo/internal/sms"
	"github.com/2706msjk-ui/gilmo/internal/smslogs"
	"github.com/2706msjk-ui/gilmo/pkg/database"
	"github.com/2706msjk-ui/gilmo/pkg/redis"
	"github.com/2706msjk-ui/gilmo/pkg/response"
	"github.com/2706msjk-ui/gilmo/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	var settingsCache events.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("redis cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			settingsCache = events.NewRedisCache(rdb.Client)
		}
	}

	s3Client, err := storage.NewS3(ctx, storage.S3Config{
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		PhotoBucket:     cfg.AWS.PhotoBucket,
	}, logger)
	if err != nil {
		logger.Fatal("s3", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.Admin.JWTSecret, cfg.Admin.JWTExpireHrs)
	authHandler := auth.NewHandler(cfg.Admin, jwtService, logger)

	registrationRepo := registrations.NewRepository(pool)
	registrationHandler := registrations.NewHandler(
		registrationRepo, s3Client, registrations.NewValidator(cfg.Event), logger)

	eventRepo := events.NewRepository(pool)
	eventHandler := events.NewHandler(eventRepo, settingsCache, logger)

	smsClient := sms.NewClient(cfg.SMS, logger)
	smsLogRepo := smslogs.NewRepository(pool)
	dispatcher := notifications.NewDispatcher(registrationRepo, smsClient, smsLogRepo, logger)
	notificationHandler := notifications.NewHandler(dispatcher, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public: registration funnel and capacity gauges
	router.POST("/registrations", registrationHandler.Create)
	router.GET("/events/settings", eventHandler.ListSettings)

	// Dispatcher triggers: database-insert webhook and manual send
	router.POST("/webhooks/registration-created", notificationHandler.Webhook)
	router.POST("/notifications/send", notificationHandler.Send)

	// Admin
	router.POST("/admin/login", authHandler.Login)
	admin := router.Group("/admin")
	admin.Use(middleware.JWT(jwtService))
	{
		admin.GET("/registrations", registrationHandler.List)
		admin.POST("/registrations/:id/approve", notificationHandler.Approve)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
