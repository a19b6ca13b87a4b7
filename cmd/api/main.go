package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/marketplace-api/config"
	"github.com/jwalitptl/marketplace-api/internal/email"
	"github.com/jwalitptl/marketplace-api/internal/handler"
	availabilityHandler "github.com/jwalitptl/marketplace-api/internal/handler/availability"
	authHandler "github.com/jwalitptl/marketplace-api/internal/handler/auth"
	bookingHandler "github.com/jwalitptl/marketplace-api/internal/handler/booking"
	catalogHandler "github.com/jwalitptl/marketplace-api/internal/handler/catalog"
	reviewHandler "github.com/jwalitptl/marketplace-api/internal/handler/review"
	"github.com/jwalitptl/marketplace-api/internal/middleware"
	"github.com/jwalitptl/marketplace-api/internal/repository/postgres"
	"github.com/jwalitptl/marketplace-api/internal/router"
	authService "github.com/jwalitptl/marketplace-api/internal/service/auth"
	availabilityService "github.com/jwalitptl/marketplace-api/internal/service/availability"
	bookingService "github.com/jwalitptl/marketplace-api/internal/service/booking"
	catalogService "github.com/jwalitptl/marketplace-api/internal/service/catalog"
	reviewService "github.com/jwalitptl/marketplace-api/internal/service/review"
	"github.com/jwalitptl/marketplace-api/pkg/auth"
	"github.com/jwalitptl/marketplace-api/pkg/logger"
	"github.com/jwalitptl/marketplace-api/pkg/messaging"
	"github.com/jwalitptl/marketplace-api/pkg/messaging/redis"
)

func main() {
	log.Logger = *logger.NewLogger(nil).Zerolog()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	// The broker is optional; bookings still work without event fanout.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		logger := log.Logger
		broker, err = redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), &logger)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, booking events disabled")
			broker = nil
		} else {
			defer broker.Close()
		}
	}

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(cfg.SMTP.ToEmailConfig())
	}

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	authSvc := authService.NewService(userRepo, jwtSvc)
	catalogSvc := catalogService.NewService(serviceRepo, userRepo)
	availabilitySvc := availabilityService.NewService(availabilityRepo, bookingRepo, serviceRepo)
	bookingSvc := bookingService.NewService(bookingRepo, serviceRepo, userRepo, availabilitySvc, broker, emailSvc)
	reviewSvc := reviewService.NewService(reviewRepo, bookingRepo, userRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	catalogH := catalogHandler.NewHandler(catalogSvc)
	availabilityH := availabilityHandler.NewHandler(availabilitySvc)
	bookingH := bookingHandler.NewHandler(bookingSvc)
	reviewH := reviewHandler.NewHandler(reviewSvc)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Security.AllowedOrigins
	}
	if len(cfg.Security.AllowedMethods) > 0 {
		corsCfg.AllowMethods = cfg.Security.AllowedMethods
	}
	if len(cfg.Security.AllowedHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.Security.AllowedHeaders
	}

	r := router.NewRouter(
		authMiddleware,
		authH,
		catalogH,
		availabilityH,
		bookingH,
		reviewH,
		h,
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    corsCfg,
			MetricsPrefix: "marketplace",
			SlotCacheTTL:  cfg.SlotCache.TTL,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
