package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/api/swagger"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/handler"
	internalmiddleware "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/middleware"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/notify"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/repository"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/service"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/cache"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/config"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/database"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/logger"
	corsmiddleware "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/middleware/cors"
	reqidmiddleware "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/middleware/requestid"
)

// @title Répétition Chez Toi API
// @version 1.0.0
// @description Tutoring marketplace: tutor availability, bookings, messages and reviews.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, logr); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled || cfg.Notifications.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, cache and live updates disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	loc := cfg.Booking.Location()

	userRepo := repository.NewUserRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	profileRepo := repository.NewTeacherProfileRepository(db)
	childRepo := repository.NewChildRepository(db)

	var cacheSvc *service.CacheService
	if redisClient != nil && cfg.Cache.Enabled {
		cacheSvc = service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metrics, cfg.Cache.TTL, logr, true)
	}

	var notifier service.ChangeNotifier
	var eventSource *notify.Subscriber
	if redisClient != nil && cfg.Notifications.Enabled {
		publisher := notify.NewPublisher(notify.NewRedisBroker(redisClient), cfg.Notifications, metrics, logr)
		publisher.Start(ctx)
		defer publisher.Stop()
		notifier = publisher
		eventSource = notify.NewSubscriber(redisClient, cfg.Notifications.ChannelPrefix, logr)
	}

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, validate, loc, logr)
	childSvc := service.NewChildService(childRepo, validate, logr)
	bookingSvc := service.NewBookingService(bookingRepo, db, availabilitySvc, userRepo, childSvc, notifier, metrics, validate, logr, service.BookingServiceConfig{
		AvailabilityPolicy: cfg.Booking.AvailabilityPolicy,
		Location:           loc,
		CompletionGrace:    cfg.Booking.AutoCompleteGrace,
	})
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo, cacheSvc, validate, logr)
	messageSvc := service.NewMessageService(messageRepo, bookingRepo, notifier, validate, logr)
	referenceSvc := service.NewReferenceService(referenceRepo, cacheSvc)
	profileSvc := service.NewTeacherProfileService(profileRepo, referenceSvc, cacheSvc, validate, logr)

	sweeper := service.NewCompletionSweeper(bookingSvc, cfg.Booking.AutoCompleteInterval, logr)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	events := handler.NewEventHandler(nil, 0, logr)
	if eventSource != nil {
		events = handler.NewEventHandler(eventSource, 0, logr)
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, authSvc, handler.Handlers{
		Auth:         handler.NewAuthHandler(authSvc),
		Availability: handler.NewAvailabilityHandler(availabilitySvc, bookingSvc),
		Bookings:     handler.NewBookingHandler(bookingSvc),
		Reviews:      handler.NewReviewHandler(reviewSvc),
		Messages:     handler.NewMessageHandler(messageSvc),
		Reference:    handler.NewReferenceHandler(referenceSvc),
		Profiles:     handler.NewTeacherProfileHandler(profileSvc),
		Children:     handler.NewChildHandler(childSvc),
		Events:       events,
		Metrics:      handler.NewMetricsHandler(metrics, readinessChecks(db, redisClient)),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "availability_policy", cfg.Booking.AvailabilityPolicy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func readinessChecks(db *sqlx.DB, redisClient *redis.Client) map[string]handler.ReadinessCheck {
	checks := map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	return checks
}
