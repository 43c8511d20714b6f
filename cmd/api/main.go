package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/bookwell/booking-api/internal/config"
	"github.com/bookwell/booking-api/internal/handler"
	availabilityHandler "github.com/bookwell/booking-api/internal/handler/availability"
	bookingHandler "github.com/bookwell/booking-api/internal/handler/booking"
	"github.com/bookwell/booking-api/internal/middleware"
	"github.com/bookwell/booking-api/internal/notifier"
	"github.com/bookwell/booking-api/internal/repository/postgres"
	"github.com/bookwell/booking-api/internal/router"
	accountService "github.com/bookwell/booking-api/internal/service/account"
	availabilityService "github.com/bookwell/booking-api/internal/service/availability"
	bookingService "github.com/bookwell/booking-api/internal/service/booking"
	"github.com/bookwell/booking-api/pkg/auth"
	"github.com/bookwell/booking-api/pkg/logger"
	"github.com/bookwell/booking-api/pkg/messaging"
	redisBroker "github.com/bookwell/booking-api/pkg/messaging/redis"
	"github.com/bookwell/booking-api/pkg/metrics"
	"github.com/bookwell/booking-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	var broker messaging.Broker
	if cfg.Redis.Enabled {
		broker, err = redisBroker.NewRedisBroker(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
	}

	var emailSender *notifier.EmailSender
	if cfg.SMTP.Enabled {
		emailSender = notifier.NewEmailSender(cfg.SMTP)
	}
	notify := notifier.New(emailSender, broker, logger.ForComponent(log, "notifier"))

	domainMetrics := metrics.New(prometheus.DefaultRegisterer, "booking_api")

	accountSvc := accountService.NewService(accountRepo, time.Duration(cfg.Booking.SettingsCacheSeconds)*time.Second, cfg.Booking.DefaultStepMinutes)
	availabilitySvc := availabilityService.NewService(serviceRepo, scheduleRepo, bookingRepo, accountSvc, domainMetrics)
	bookingSvc := bookingService.NewService(bookingRepo, notify, logger.ForComponent(log, "booking"), domainMetrics)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret)
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	v := validator.New()
	h := handler.NewHandler()
	availabilityH := availabilityHandler.NewHandler(availabilitySvc)
	bookingH := bookingHandler.NewHandler(bookingSvc, v)

	r := router.NewRouter(authMiddleware, h, logger.ForComponent(log, "http"), router.Config{
		RateLimit:  rate.Limit(cfg.Server.RateLimit),
		RateBurst:  cfg.Server.RateBurst,
		CORSConfig: middleware.DefaultCORSConfig(),
	}, availabilityH, bookingH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
