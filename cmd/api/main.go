package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logistics-orders/internal/api"
	"logistics-orders/internal/config"
	"logistics-orders/internal/modules/orders"
	"logistics-orders/internal/modules/tracking"
	"logistics-orders/pkg/email"
	"logistics-orders/pkg/events"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "order-management").Logger()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	// --- Database ---
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to parse database configuration")
	}
	dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to create connection pool")
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("unable to ping database")
	}
	logger.Info().Msg("connected to the database")

	// --- Event publisher ---
	// Connects lazily; a broker outage must not keep the service down.
	publisher := events.NewAMQPPublisher(cfg.AMQPURL, cfg.EventExchange, cfg.EventQueue, cfg.EventRoutingKey)
	defer publisher.Close()

	// --- Status notification emails (optional) ---
	var notifier orders.StatusNotifier
	if cfg.EmailEnabled() {
		sender, err := email.NewSESV2Sender(context.Background(), cfg.SESRegion, cfg.NotifyFrom)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize SES sender")
		}
		templates, err := email.NewTemplateManager()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to parse email templates")
		}
		notifier = email.NewStatusNotifier(sender, templates, cfg.NotifyTo)
		logger.Info().Str("to", cfg.NotifyTo).Msg("status notification emails enabled")
	}

	// --- Modules ---
	orderRepo := orders.NewRepository(dbPool)
	orderService := orders.NewService(orderRepo, publisher, notifier)
	orderHandler := orders.NewHandler(orderService)
	trackingHandler := tracking.NewHandler(time.Second)

	// --- HTTP server ---
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	api.SetupRoutes(e, orderHandler, trackingHandler)

	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}
	logger.Info().Msg("server exiting")
}
