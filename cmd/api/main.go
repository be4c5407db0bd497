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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/clinicware/doctors-portal-api/internal/auth"
	"github.com/clinicware/doctors-portal-api/internal/booking"
	"github.com/clinicware/doctors-portal-api/internal/config"
	"github.com/clinicware/doctors-portal-api/internal/handlers"
	"github.com/clinicware/doctors-portal-api/internal/metrics"
	"github.com/clinicware/doctors-portal-api/internal/middleware"
	"github.com/clinicware/doctors-portal-api/internal/payments"
	"github.com/clinicware/doctors-portal-api/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	logger.Info().Str("port", cfg.Port).Str("database", cfg.MongoDatabase).Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := store.NewMongoStore(connectCtx, cfg.MongoURI, cfg.MongoDatabase, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Error().Err(err).Msg("disconnect mongodb")
		}
	}()
	logger.Info().Msg("connected to mongodb")

	if err := db.EnsureIndexes(connectCtx); err != nil {
		return err
	}

	tokens, err := auth.NewManager(cfg.JWTSecret)
	if err != nil {
		return err
	}

	var intents payments.IntentCreator
	if cfg.StripeSecretKey != "" {
		intents, err = payments.NewStripeClient(cfg.StripeSecretKey)
		if err != nil {
			return err
		}
	} else {
		logger.Warn().Msg("STRIPE_SECRET_KEY is not set, payment intents disabled")
		intents = payments.Disabled{}
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	engine := booking.NewEngine(db, logger, m)
	h := handlers.NewHandler(db, engine, tokens, intents, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Instrument(m))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.LogPretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}
