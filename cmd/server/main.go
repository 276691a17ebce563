package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/housebill/backend/internal/application/billing"
	identityapp "github.com/housebill/backend/internal/application/identity"
	"github.com/housebill/backend/internal/infrastructure/auth"
	"github.com/housebill/backend/internal/infrastructure/config"
	"github.com/housebill/backend/internal/infrastructure/logger"
	"github.com/housebill/backend/internal/infrastructure/notifier"
	"github.com/housebill/backend/internal/infrastructure/persistence"
	"github.com/housebill/backend/internal/infrastructure/scheduler"
	"github.com/housebill/backend/internal/interfaces/http/handler"
	"github.com/housebill/backend/internal/interfaces/http/middleware"
	"github.com/housebill/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const appVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	zapLogger, err := logger.NewFromAppConfig(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(zapLogger)
	}()

	zapLogger.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", appVersion),
	)

	db, err := persistence.NewDatabase(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	repos := persistence.NewRepositories(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Telegram is optional; without it every notification is a no-op
	var billNotifier billingapp.Notifier = billingapp.NopNotifier{}
	if cfg.Telegram.Enabled {
		client := notifier.NewTelegramClient(cfg.Telegram, zapLogger)
		billNotifier = notifier.NewTelegramNotifier(client, cfg.Currency, zapLogger)
		zapLogger.Info("Telegram notifications enabled")
	}

	authService := identityapp.NewAuthService(repos.Users, jwtService, zapLogger)
	userService := identityapp.NewUserService(repos.Users, zapLogger)
	billService := billingapp.NewBillService(uow, repos, billNotifier, zapLogger)
	shareService := billingapp.NewShareService(uow, repos, zapLogger)
	paymentService := billingapp.NewPaymentService(uow, repos, billNotifier, zapLogger)
	settingService := billingapp.NewSettingService(uow, repos, zapLogger)
	readingService := billingapp.NewReadingService(repos, zapLogger)
	dashboardService := billingapp.NewDashboardService(repos)
	reminderService := billingapp.NewReminderService(repos, billNotifier, zapLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.Recovery(zapLogger))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(zapLogger))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			zapLogger.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		UserRepository: repos.Users,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: zapLogger,
	}))

	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(db.DB, appVersion)).
		Register(handler.NewAuthHandler(authService, zapLogger)).
		Register(handler.NewUserHandler(userService, zapLogger)).
		Register(handler.NewBillHandler(billService, zapLogger)).
		Register(handler.NewShareHandler(shareService, zapLogger)).
		Register(handler.NewPaymentHandler(paymentService, zapLogger)).
		Register(handler.NewSettingHandler(settingService, zapLogger)).
		Register(handler.NewReadingHandler(readingService, zapLogger)).
		Register(handler.NewDashboardHandler(dashboardService, cfg.Currency, zapLogger))
	r.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reminderScheduler *scheduler.ReminderScheduler
	if cfg.Scheduler.Enabled {
		reminderScheduler = scheduler.NewReminderScheduler(
			reminderService, zapLogger,
			scheduler.ReminderSchedulerConfigFromApp(cfg.Scheduler))
		if err := reminderScheduler.Start(ctx); err != nil {
			zapLogger.Fatal("Failed to start reminder scheduler", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if reminderScheduler != nil {
		if err := reminderScheduler.Stop(shutdownCtx); err != nil {
			zapLogger.Warn("Reminder scheduler stop failed", zap.Error(err))
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	zapLogger.Info("Server exited")
}
